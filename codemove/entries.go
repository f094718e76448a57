package codemove

import (
	"fmt"
	"sort"
	"strings"

	"github.com/viant/qwikfold/hook"
)

// GenerateEntries builds one barrel-module source per distinct EntryPolicy
// tag assigned across hooks: every hook sharing a tag is re-exported from a
// single generated file, so bundlers can place them in one chunk instead of
// one file per hook. Hooks with no assigned Entry are left for NewModule to
// materialize individually and do not appear here.
func GenerateEntries(hooks []*hook.Hook) map[string]string {
	groups := map[string][]*hook.Hook{}
	for _, h := range hooks {
		if h.Entry == nil {
			continue
		}
		groups[*h.Entry] = append(groups[*h.Entry], h)
	}

	out := make(map[string]string, len(groups))
	for entry, hs := range groups {
		sort.Slice(hs, func(i, j int) bool { return hs[i].Name < hs[j].Name })
		var b strings.Builder
		for _, h := range hs {
			b.WriteString(fmt.Sprintf("export { %s } from \"./%s\";\n", h.Name, h.CanonicalFilename))
		}
		out[entry] = b.String()
	}
	return out
}
