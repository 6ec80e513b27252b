package rules

import (
	"github.com/qiniu/x/gsh"
)

const GopPackage = true

// RulesF is the classfile a rules script instantiates (a file named like
// Rules_build.gox). Its MainEntry registers the onRules callback; the
// driver later invokes the callback with the scoped Build.
type RulesF struct {
	gsh.App

	fOnRules func(b *Build)
}

func (p *RulesF) app() *gsh.App {
	return &p.App
}

// OnRules registers the callback that declares the project's rules.
func (p *RulesF) OnRules(f func(b *Build)) {
	p.fOnRules = f
}

// Gopt_RulesF_Main is main entry of this classfile.
func Gopt_RulesF_Main(this interface {
	app() *gsh.App
	MainEntry()
}) {
	this.MainEntry()
	gsh.InitApp(this.app())
}
