package resolve

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simvux/lumina/internal/ids"
)

func TestDeclareThenResolveRoundTrips(t *testing.T) {
	r := New()
	project := r.NewRootModule(nil)
	r.SetProject(project)

	r.DeclareFunc(project, Public(), "main", project, PlainFunc(ids.FuncId(1)))

	got, err := r.ResolveFunc(project, []string{"main"})
	require.NoError(t, err)
	assert.Equal(t, EntityOfFunc(PlainFunc(ids.FuncId(1))), got.Key)
}

func TestResolveFuncAndTypeDisagreeOnlyWhenSharedName(t *testing.T) {
	r := New()
	project := r.NewRootModule(nil)
	r.SetProject(project)

	r.DeclareFunc(project, Public(), "foo", project, PlainFunc(ids.FuncId(1)))
	r.DeclareType(project, Public(), "foo", project, TypeRef{Kind: TypeRecord, Key: ids.TypeId(2)})

	byFunc, err := r.ResolveFunc(project, []string{"foo"})
	require.NoError(t, err)
	assert.Equal(t, EntityFunc, byFunc.Key.Kind)

	byType, err := r.ResolveType(project, []string{"foo"})
	require.NoError(t, err)
	assert.Equal(t, EntityType, byType.Key.Kind)
}

func TestProjectVisibilityIsSharedWithinRootButNotAcross(t *testing.T) {
	r := New()
	rootA := r.NewRootModule(nil)
	r.SetProject(rootA)
	memberB := r.NewMemberModule(rootA)
	rootC := r.NewRootModule(nil)

	r.DeclareFunc(rootA, ProjectOf(rootA), "helper", rootA, PlainFunc(ids.FuncId(9)))

	_, err := r.ResolveFunc(memberB, []string{"project", "helper"})
	assert.NoError(t, err, "same project root should be able to see project-visible entity")

	_, err = r.ResolveFunc(rootC, []string{"project", "helper"})
	require.Error(t, err)
	var ie *ImportError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, ErrKindBadAccess, ie.Kind)
}

func TestResolvePreludeFallbackNeverShadowsOriginSuccess(t *testing.T) {
	r := New()
	project := r.NewRootModule(nil)
	r.SetProject(project)

	r.DeclareFunc(ids.PRELUDE, Public(), "print", ids.PRELUDE, PlainFunc(ids.FuncId(1)))
	r.DeclareFunc(project, Public(), "print", project, PlainFunc(ids.FuncId(2)))

	got, err := r.ResolveFunc(project, []string{"print"})
	require.NoError(t, err)
	assert.Equal(t, EntityOfFunc(PlainFunc(ids.FuncId(2))), got.Key, "origin-rooted resolution must win over the prelude")
}

func TestResolvePreludeFallbackAppliesWhenOriginFails(t *testing.T) {
	r := New()
	project := r.NewRootModule(nil)
	r.SetProject(project)

	r.DeclareFunc(ids.PRELUDE, Public(), "print", ids.PRELUDE, PlainFunc(ids.FuncId(1)))

	got, err := r.ResolveFunc(project, []string{"print"})
	require.NoError(t, err)
	assert.Equal(t, EntityOfFunc(PlainFunc(ids.FuncId(1))), got.Key)
}

func TestResolveBadAccessNeverFallsThroughToPrelude(t *testing.T) {
	r := New()
	rootA := r.NewRootModule(nil)
	r.SetProject(rootA)
	rootC := r.NewRootModule(nil)

	r.DeclareFunc(ids.PRELUDE, Public(), "secret", ids.PRELUDE, PlainFunc(ids.FuncId(7)))
	r.DeclareFunc(rootA, ProjectOf(rootA), "secret", rootA, PlainFunc(ids.FuncId(1)))

	_, err := r.ResolveFunc(rootC, []string{"project", "secret"})
	require.Error(t, err)
	var ie *ImportError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, ErrKindBadAccess, ie.Kind, "a BadAccess on the origin must not be masked by a successful prelude hit")
}

func TestAbsoluteStdPreludeIgnoresVisibility(t *testing.T) {
	r := New()
	project := r.NewRootModule(nil)
	r.SetProject(project)
	preludeLib := r.NewLib("std", "prelude")

	r.DeclareFunc(preludeLib, ProjectOf(preludeLib), "println", preludeLib, PlainFunc(ids.FuncId(3)))

	got, err := r.ResolveFunc(project, []string{"std", "prelude", "println"})
	require.NoError(t, err)
	assert.Equal(t, EntityOfFunc(PlainFunc(ids.FuncId(3))), got.Key)
}

func TestLibNotInstalledDoesNotFallBackToPrelude(t *testing.T) {
	r := New()
	project := r.NewRootModule(nil)
	r.SetProject(project)

	_, err := r.ResolveFunc(project, []string{"std", "json", "parse"})
	require.Error(t, err)
	var ie *ImportError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, ErrKindLibNotInstalled, ie.Kind)
}

func TestTypeMemberSugarForNonModuleSegment(t *testing.T) {
	r := New()
	project := r.NewRootModule(nil)
	r.SetProject(project)

	bar := TypeRef{Kind: TypeSum, Key: ids.TypeId(4)}
	r.DeclareType(project, Public(), "Bar", project, bar)

	got, err := r.ResolveType(project, []string{"Bar", "mk"})
	require.NoError(t, err)
	require.Equal(t, EntityMember, got.Key.Kind)
	assert.Equal(t, bar, got.Key.Type)
	assert.Equal(t, "mk", got.Key.MemberName)
}

func TestResolveImportRecursesThroughMemberRoot(t *testing.T) {
	r := New()
	root := r.NewRootModule(nil)
	r.SetProject(root)
	child := r.NewRootModule(&root)
	r.DeclareModuleLink(root, Public(), "child", child)

	grandchildOrigin := r.NewMemberModule(root)

	m, ok := r.ResolveImport(grandchildOrigin, "child")
	require.True(t, ok)
	assert.Equal(t, child, m.Key)
}

func TestResolveLangitemIgnoresVisibility(t *testing.T) {
	r := New()
	project := r.NewRootModule(nil)
	r.SetProject(project)

	r.DeclareFunc(project, ProjectOf(project), "__lang_panic", project, PlainFunc(ids.FuncId(11)))

	got, err := r.ResolveLangitem([]string{"__lang_panic"})
	require.NoError(t, err)
	assert.Equal(t, EntityOfFunc(PlainFunc(ids.FuncId(11))), got.Key)
}

func TestModNotFoundWhenMultipleSegmentsRemainAfterMiss(t *testing.T) {
	r := New()
	project := r.NewRootModule(nil)
	r.SetProject(project)

	_, err := r.ResolveModule(project, []string{"nope", "deep", "path"})
	require.Error(t, err)
	var ie *ImportError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, ErrKindModNotFound, ie.Kind)
}

func TestLibShouldBeIncluded(t *testing.T) {
	r := New()
	name, rest, ok := r.LibShouldBeIncluded([]string{"std", "json", "parse"})
	require.True(t, ok)
	assert.Equal(t, "json", name)
	assert.Equal(t, []string{"parse"}, rest)

	r.NewLib("std", "json")
	_, _, ok = r.LibShouldBeIncluded([]string{"std", "json", "parse"})
	assert.False(t, ok, "once installed, the library should no longer need lazy inclusion")
}

func TestResolveAccessorReturnsAllCandidatesInDeclarationOrder(t *testing.T) {
	r := New()
	project := r.NewRootModule(nil)
	r.SetProject(project)

	r.DeclareAccessor(project, Public(), "x", ids.RecordId(1), ids.FieldId(0))
	r.DeclareAccessor(project, Public(), "x", ids.RecordId(2), ids.FieldId(0))

	got := r.ResolveAccessor(project, "x")
	require.Len(t, got, 2)
	assert.Equal(t, ids.RecordId(1), got[0].Key.Record)
	assert.Equal(t, ids.RecordId(2), got[1].Key.Record)
}

func TestToFieldLookupDumpsEveryModule(t *testing.T) {
	r := New()
	project := r.NewRootModule(nil)
	r.SetProject(project)
	r.DeclareAccessor(project, Public(), "y", ids.RecordId(5), ids.FieldId(1))

	lookup := r.ToFieldLookup()
	candidates := lookup[project]["y"]
	require.Len(t, candidates, 1)
	assert.Equal(t, ids.RecordId(5), candidates[0].Key.Record)
}
