package rules

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// generateHashMarkers attaches a content-hash marker file to every rule that
// is neither a directory nor phony. The marker path encodes a hash of the
// rule's inputs and commands; when either changes the path changes, the
// marker rule removes the stale marker and the stale output, and the runner
// rebuilds the target even though it only compares timestamps.
func (b *Build) generateHashMarkers() {
	tmp := b.GetVariable("TMP")
	var targets []*Rule
	b.st.walkRules(func(r *Rule) {
		if !r.Directory && !r.Phony {
			targets = append(targets, r)
		}
	})
	for _, r := range targets {
		codeHash := md5hex(strings.Join(r.Inputs, " ") + "\n" + strings.Join(r.Commands, "\n"))
		nameHash := md5hex(r.Outputs[0])
		dir := NormalizeFilename(tmp, ".hash", nameHash[:2])
		stale := dir + "/" + nameHash[2:] + "_*"
		marker := dir + "/" + nameHash[2:] + "_" + codeHash
		b.Generate([]string{marker}, nil,
			"@rm -f "+stale+" "+r.Outputs[0],
			"@touch "+marker)
		b.RuleSetPriority(marker, -100)
		r.Inputs = addUnique(r.Inputs, marker)
	}
}

func md5hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
