package ixgo

import (
	"github.com/goplus/ixgo/xgobuild"
	"github.com/goplus/mod/modfile"

	_ "github.com/stefanreuther/accidental-build/internal/ixgo/pkg/github.com/qiniu/x/gsh"
	_ "github.com/stefanreuther/accidental-build/internal/ixgo/pkg/github.com/stefanreuther/accidental-build/compiler"
	_ "github.com/stefanreuther/accidental-build/internal/ixgo/pkg/github.com/stefanreuther/accidental-build/configure"
	_ "github.com/stefanreuther/accidental-build/internal/ixgo/pkg/github.com/stefanreuther/accidental-build/rules"
)

func init() {
	xgobuild.RegisterProject(&modfile.Project{
		Ext:   "_build.gox",
		Class: "RulesF",
		PkgPaths: []string{
			"github.com/stefanreuther/accidental-build/rules",
		},
		Import: []*modfile.Import{
			{
				Name: "compiler",
				Path: "github.com/stefanreuther/accidental-build/compiler",
			},
			{
				Name: "configure",
				Path: "github.com/stefanreuther/accidental-build/configure",
			},
			{
				Name: "semver",
				Path: "golang.org/x/mod/semver",
			},
		},
	})
}
