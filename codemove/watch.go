package codemove

import (
	"fmt"
	"strings"
)

// AddHandleWatch appends a registration statement for a `useTask$`/
// `useWatch$`-style reactive hook to body, resolving spec.md §9's Open
// Question (a). original_source/.../transform.rs carries a workaround
// (tracked upstream as issues #456 and #123) where the plain, intended form
// of this registration triggered a double-invocation bug under SSR
// hydration, so the shipped code wraps the qrl reference in an extra
// indirection function before handing it to the runtime. Since that
// upstream bug may or may not apply to every consumer of this package, both
// forms are kept and selected by workaround:
//
//   - workaround=true  reproduces the guarded form, wrapping qrlRef so the
//     runtime always receives a fresh function identity.
//   - workaround=false emits the straightforward direct registration a
//     from-scratch implementation would reach for.
func AddHandleWatch(body *strings.Builder, qrlRef string, workaround bool) {
	if workaround {
		// issue456/issue123: pass a thunk, not the qrl value itself, so a
		// re-render can't observe a stale registration from a previous one.
		fmt.Fprintf(body, "%s.push(() => %s);\n", watchRegistryName, qrlRef)
		return
	}
	fmt.Fprintf(body, "%s.push(%s);\n", watchRegistryName, qrlRef)
}

// watchRegistryName is the array every generated entry module's watch
// registrations are appended to.
const watchRegistryName = "_hW"
