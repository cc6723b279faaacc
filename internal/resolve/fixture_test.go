package resolve

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/simvux/lumina/internal/ids"
)

// fixture is one txtar archive holding a module graph, its declarations,
// and the resolutions expected against it, as three named sections. This
// keeps a whole scenario — graph shape, declarations, and expectations —
// in one file-shaped block instead of scattered Resolver calls, the same
// golang.org/x/tools import the teacher's go/packages-driven binding
// generator once used, retargeted here from Go source introspection to
// parsing declarative resolver scenarios.
type fixture struct {
	Modules string
	Declare string
	Resolve string
}

func parseFixture(t *testing.T, data string) fixture {
	t.Helper()
	arch := txtar.Parse([]byte(data))
	f := fixture{}
	for _, file := range arch.Files {
		switch file.Name {
		case "modules":
			f.Modules = string(file.Data)
		case "declare":
			f.Declare = string(file.Data)
		case "resolve":
			f.Resolve = string(file.Data)
		default:
			t.Fatalf("fixture: unknown section %q", file.Name)
		}
	}
	return f
}

// buildFromFixture interprets the "modules" and "declare" sections into a
// live Resolver, returning it alongside a name -> ids.ModuleId table the
// "resolve" section's lines are checked against.
//
// modules grammar, one directive per line:
//
//	root <name>             NewRootModule(nil); the first root also becomes SetProject
//	root <name> <parent>    NewRootModule(&parent)
//	member <name> <root>    NewMemberModule(root)
//	lib <section> <name>    NewLib(section, name)
//
// declare grammar:
//
//	func <module> <name> <vis> <funcid>
//
// vis is either "pub" or "proj:<module>".
func buildFromFixture(t *testing.T, f fixture) (*Resolver, map[string]ids.ModuleId) {
	t.Helper()
	r := New()
	names := map[string]ids.ModuleId{"PRELUDE": ids.PRELUDE}
	projectSet := false

	for _, line := range nonEmptyLines(f.Modules) {
		fields := strings.Fields(line)
		switch fields[0] {
		case "root":
			var m ids.ModuleId
			if len(fields) == 3 {
				parent := names[fields[2]]
				m = r.NewRootModule(&parent)
			} else {
				m = r.NewRootModule(nil)
			}
			names[fields[1]] = m
			if !projectSet {
				r.SetProject(m)
				projectSet = true
			}
		case "member":
			names[fields[1]] = r.NewMemberModule(names[fields[2]])
		case "lib":
			names[fields[2]] = r.NewLib(fields[1], fields[2])
		default:
			t.Fatalf("fixture: unknown modules directive %q", line)
		}
	}

	for _, line := range nonEmptyLines(f.Declare) {
		fields := strings.Fields(line)
		require.Equal(t, "func", fields[0], "fixture: only func declarations are supported")
		module := names[fields[1]]
		name := fields[2]
		vis := parseVis(t, fields[3], names)
		funcId, err := strconv.Atoi(fields[4])
		require.NoError(t, err)
		r.DeclareFunc(module, vis, name, module, PlainFunc(ids.FuncId(funcId)))
	}

	return r, names
}

func parseVis(t *testing.T, tok string, names map[string]ids.ModuleId) Visibility {
	t.Helper()
	if tok == "pub" {
		return Public()
	}
	root, ok := strings.CutPrefix(tok, "proj:")
	require.True(t, ok, "fixture: unrecognised visibility token %q", tok)
	return ProjectOf(names[root])
}

// runFixture builds the Resolver and checks every "resolve" line against
// it. A line is either:
//
//	func <module> <path...> => ok <funcid>
//	func <module> <path...> => err <ErrKind>
func runFixture(t *testing.T, data string) {
	t.Helper()
	f := parseFixture(t, data)
	r, names := buildFromFixture(t, f)

	for _, line := range nonEmptyLines(f.Resolve) {
		before, after, ok := strings.Cut(line, "=>")
		require.True(t, ok, "fixture: resolve line missing '=>': %q", line)

		query := strings.Fields(before)
		require.Equal(t, "func", query[0], "fixture: only func resolution is supported")
		from := names[query[1]]
		path := query[2:]

		outcome := strings.Fields(after)
		got, err := r.ResolveFunc(from, path)

		switch outcome[0] {
		case "ok":
			require.NoError(t, err, "fixture line %q", line)
			wantId, convErr := strconv.Atoi(outcome[1])
			require.NoError(t, convErr)
			assert.Equal(t, EntityOfFunc(PlainFunc(ids.FuncId(wantId))), got.Key, "fixture line %q", line)
		case "err":
			require.Error(t, err, "fixture line %q", line)
			var ie *ImportError
			require.ErrorAs(t, err, &ie, "fixture line %q", line)
			assert.Equal(t, outcome[1], errKindName(ie.Kind), "fixture line %q", line)
		default:
			t.Fatalf("fixture: unrecognised resolve outcome %q", outcome[0])
		}
	}
}

func errKindName(k ImportErrorKind) string {
	switch k {
	case ErrKindLibNotInstalled:
		return "lib_not_installed"
	case ErrKindNotFound:
		return "not_found"
	case ErrKindModNotFound:
		return "mod_not_found"
	case ErrKindBadAccess:
		return "bad_access"
	default:
		return "unknown"
	}
}

func nonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func TestFixtureProjectVisibilityAcrossMembers(t *testing.T) {
	runFixture(t, `
-- modules --
root projectA
member memberB projectA
root projectC

-- declare --
func projectA helper proj:projectA 9

-- resolve --
func memberB project helper => ok 9
func projectC project helper => err bad_access
`)
}

func TestFixtureLibSectionResolvesAbsolutely(t *testing.T) {
	runFixture(t, `
-- modules --
root project
lib std prelude

-- declare --
func prelude println pub 3

-- resolve --
func project std prelude println => ok 3
func project std json parse => err lib_not_installed
`)
}

func TestFixtureNestedProjectRootSharesVisibility(t *testing.T) {
	runFixture(t, `
-- modules --
root parent
root child parent

-- declare --
func parent shared proj:parent 1

-- resolve --
func child project shared => ok 1
`)
}

func TestFixturePreludeFallbackOnlyWhenOriginMisses(t *testing.T) {
	runFixture(t, `
-- modules --
root project

-- declare --
func PRELUDE print pub 1
func project print pub 2

-- resolve --
func project print => ok 2
`)
}
