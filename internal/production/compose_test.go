package production

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ccgdrs/internal/ccg"
	"github.com/roach88/ccgdrs/internal/drt"
)

func TestApplyDeterminer(t *testing.T) {
	det := functor(t, "NP/N", [][]string{{"x"}}, drs(t, `[x| ]`, "NP", "x"))
	noun := drs(t, `[| man(y)]`, "N", "y")

	got, err := det.Apply(noun, 0)
	require.NoError(t, err)
	d, ok := got.(*DrsProduction)
	require.True(t, ok)
	assert.Equal(t, `[x| man(x)]`, d.String())
	assert.Equal(t, ccg.NP, d.Category())
	assert.Equal(t, drt.Refs("x"), d.LambdaRefs())
	assert.True(t, d.IsProper())

	assert.Equal(t, `[| man(y)]`, noun.String(), "operands are not modified")
}

func TestApplyProperNounModifier(t *testing.T) {
	merry := functor(t, "N/N", [][]string{{"x"}}, drs(t, `[| Merryweather(x)]`, "N", "x").AsProperNoun())
	high := drs(t, `[| High(x)]`, "N", "x").AsProperNoun()

	got, err := merry.Apply(high, 0)
	require.NoError(t, err)
	d := got.(*DrsProduction)
	assert.Equal(t, `[| Merryweather-High(x1)]`, d.String())
	assert.True(t, d.IsProperNoun())
	assert.Equal(t, drt.Refs("x1"), d.LambdaRefs())
}

func TestApplyWrapsProposition(t *testing.T) {
	say := functor(t, "S/S", [][]string{{"p"}}, drs(t, `[e| say(e),theme(e,p)]`, "S", "e"))

	t.Run("wrapped", func(t *testing.T) {
		got, err := say.Apply(drs(t, `[e,x| run(e),agent(e,x)]`, "S"), 0)
		require.NoError(t, err)
		assert.Equal(t, `[e1,p| say(e1),theme(e1,p),p: [e,x| run(e),agent(e,x)]]`, got.String())
	})
	t.Run("unary removed", func(t *testing.T) {
		got, err := say.Apply(drs(t, `[e| run(e),agent(e,y)]`, "S", "e", "y"), RemoveUnaryProps)
		require.NoError(t, err)
		assert.Equal(t, `[e1,p| say(e1),theme(e1,p),run(p),agent(p,y)]`, got.String())
	})
}

func TestApplyBackwardKeepsSurfaceOrder(t *testing.T) {
	vp := functor(t, `S\NP`, [][]string{{"x"}}, drs(t, `[e| walk(e),agent(e,x)]`, "S", "e"))
	subj := drs(t, `[y| dog(y)]`, "NP", "y")

	got, err := vp.Apply(subj, 0)
	require.NoError(t, err)
	assert.Equal(t, `[x,e| dog(x),walk(e),agent(e,x)]`, got.String())
	assert.Equal(t, ccg.S, got.Category())
}

func TestApplyRequiresBody(t *testing.T) {
	empty := functor(t, "NP/N", [][]string{{"x"}}, nil)
	_, err := empty.Apply(drs(t, `[| man(y)]`, "N", "y"), 0)
	assert.ErrorIs(t, err, ErrArityMismatch)
}

func TestApplyNullLeft(t *testing.T) {
	vp := functor(t, `S[b]\NP`, [][]string{{"x"}}, drs(t, `[e| welcome(e),agent(e,x)]`, "S[b]", "e"))

	got, err := vp.ApplyNullLeft(0)
	require.NoError(t, err)
	d := got.(*DrsProduction)
	assert.Equal(t, `[x1,e| welcome(e),agent(e,x1)]`, d.String())
	assert.True(t, d.IsProper())

	det := functor(t, "NP/N", [][]string{{"x"}}, drs(t, `[x| ]`, "NP", "x"))
	_, err = det.ApplyNullLeft(0)
	assert.ErrorIs(t, err, ErrArityMismatch)
}

func TestCompose(t *testing.T) {
	the := functor(t, "NP/N", [][]string{{"x"}}, drs(t, `[x| ]`, "NP", "x"))
	big := functor(t, "N/N", [][]string{{"y"}}, drs(t, `[| big(y)]`, "N", "y"))

	got, err := the.Compose(big)
	require.NoError(t, err)
	f, ok := got.(*FunctorProduction)
	require.True(t, ok)
	assert.Equal(t, "NP/N", f.Category().String())
	assert.Equal(t, `λx.[x| big(x)]`, f.String())

	np, err := f.Apply(drs(t, `[| dog(z)]`, "N", "z"), 0)
	require.NoError(t, err)
	assert.Equal(t, `[x| big(x),dog(x)]`, np.String())
}

func TestGeneralizedComposeNeedsDepth(t *testing.T) {
	the := functor(t, "NP/N", [][]string{{"x"}}, drs(t, `[x| ]`, "NP", "x"))
	big := functor(t, "N/N", [][]string{{"y"}}, drs(t, `[| big(y)]`, "N", "y"))
	_, err := the.GeneralizedCompose(big)
	assert.ErrorIs(t, err, ErrArityMismatch)
}

func TestSubstitute(t *testing.T) {
	see := functor(t, `(S\NP)/NP`, [][]string{{"z"}, {"y"}}, drs(t, `[e| see(e),agent(e,y),theme(e,z)]`, "S", "e"))
	friend := functor(t, "NP/NP", [][]string{{"a"}}, drs(t, `[b| friend(b,a)]`, "NP", "b"))

	got, err := see.Substitute(friend)
	require.NoError(t, err)
	assert.Equal(t, "S/NP", got.Category().String())
	assert.Equal(t, `λz.[y,e| friend(y,z),see(e),agent(e,y),theme(e,z)]`, got.String())

	vp := functor(t, `S\NP`, [][]string{{"x"}}, drs(t, `[e| walk(e),agent(e,x)]`, "S", "e"))
	_, err = vp.Substitute(friend)
	assert.ErrorIs(t, err, ErrArityMismatch)
}

func TestConjoin(t *testing.T) {
	man := drs(t, `[x| man(x)]`, "NP", "x")
	woman := drs(t, `[x| woman(x)]`, "NP", "x")

	t.Run("conjunction", func(t *testing.T) {
		got, err := Conjoin(man, woman, LeftLambdas, false)
		require.NoError(t, err)
		assert.Equal(t, `[x1,x| man(x1),woman(x)]`, got.String())
		assert.Equal(t, drt.Refs("x1"), got.LambdaRefs())
	})
	t.Run("right lambdas", func(t *testing.T) {
		got, err := Conjoin(man, woman, RightLambdas, false)
		require.NoError(t, err)
		assert.Equal(t, drt.Refs("x"), got.LambdaRefs())
	})
	t.Run("disjunction", func(t *testing.T) {
		rain := drs(t, `[e| rain(e)]`, "S", "e")
		snow := drs(t, `[e| snow(e)]`, "S", "e")
		got, err := Conjoin(rain, snow, LeftLambdas, true)
		require.NoError(t, err)
		assert.Equal(t, `[| [e1| rain(e1)] ∨ [e| snow(e)]]`, got.String())
	})
	t.Run("nominal disjunction merges", func(t *testing.T) {
		got, err := Conjoin(man, woman, LeftLambdas, true)
		require.NoError(t, err)
		assert.Equal(t, `[x1,x| man(x1),woman(x)]`, got.String())
		assert.Equal(t, drt.Refs("x1"), got.LambdaRefs())
		assert.True(t, got.(*DrsProduction).IsProper())
	})
	t.Run("category mismatch", func(t *testing.T) {
		_, err := Conjoin(man, drs(t, `[e| rain(e)]`, "S", "e"), LeftLambdas, false)
		assert.ErrorIs(t, err, ErrArityMismatch)
	})
	t.Run("functor with atom", func(t *testing.T) {
		vp := functor(t, `S\NP`, [][]string{{"x"}}, drs(t, `[e| walk(e),agent(e,x)]`, "S", "e"))
		_, err := Conjoin(man, vp, LeftLambdas, false)
		assert.ErrorIs(t, err, ErrArityMismatch)
	})
}

func TestConjoinFunctorsShareScopes(t *testing.T) {
	walk := functor(t, `S\NP`, [][]string{{"x"}}, drs(t, `[e| walk(e),agent(e,x)]`, "S", "e"))
	talk := functor(t, `S\NP`, [][]string{{"y"}}, drs(t, `[e| talk(e),agent(e,y)]`, "S", "e"))

	got, err := Conjoin(walk, talk, LeftLambdas, false)
	require.NoError(t, err)
	assert.Equal(t, `λx.[e1,e| walk(e1),agent(e1,x),talk(e),agent(e,x)]`, got.String())

	s, err := got.(*FunctorProduction).Apply(drs(t, `[z| John(z)]`, "NP", "z"), 0)
	require.NoError(t, err)
	assert.Equal(t, `[x,e1,e| John(x),walk(e1),agent(e1,x),talk(e),agent(e,x)]`, s.String())
}

func TestTypeRaise(t *testing.T) {
	template := functor(t, `S/(S\NP)`, [][]string{{"x", "t"}}, drs(t, `[| ]`, "S", "t"))
	john := drs(t, `[y| John(y)]`, "NP", "y")

	tr, err := template.TypeRaise(john, 0)
	require.NoError(t, err)
	assert.Equal(t, `λy,t.[y| John(y)]`, tr.String())
	assert.Equal(t, drt.Refs("t"), tr.Body().LambdaRefs())

	walk := functor(t, `S\NP`, [][]string{{"x"}}, drs(t, `[e| walk(e),agent(e,x)]`, "S", "e"))
	_, err = template.TypeRaise(walk, 0)
	assert.ErrorIs(t, err, ErrArityMismatch)

	_, err = walk.TypeRaise(john, 0)
	assert.ErrorIs(t, err, ErrArityMismatch)
}

func TestNegatedFunctorWrapsArgument(t *testing.T) {
	not := functor(t, `(S[adj]\NP)/(S[adj]\NP)`, [][]string{{"x", "s"}, {"x"}}, drs(t, `[| ]`, "S[adj]", "s")).Negate()
	happy := functor(t, `S[adj]\NP`, [][]string{{"y"}}, drs(t, `[| happy(y)]`, "S[adj]", "t"))
	assert.Equal(t, `¬λx.λx,s.[| ]`, not.String())

	vp, err := not.Apply(happy, 0)
	require.NoError(t, err)
	f, ok := vp.(*FunctorProduction)
	require.True(t, ok)
	assert.False(t, f.IsNegated())

	s, err := f.Apply(drs(t, `[z| man(z)]`, "NP", "z"), 0)
	require.NoError(t, err)
	assert.Equal(t, `[x| man(x),¬[| happy(x)]]`, s.String())
}

func TestRecategorize(t *testing.T) {
	vp := functor(t, `S[dcl]\NP`, [][]string{{"x"}}, drs(t, `[e| walk(e),agent(e,x)]`, "S[dcl]", "e"))
	p, err := Recategorize(vp, ccg.MustParse(`S\NP`))
	require.NoError(t, err)
	assert.Equal(t, `S\NP`, p.Category().String())
	assert.Equal(t, ccg.S, p.(*FunctorProduction).Body().Category())

	_, err = Recategorize(vp, ccg.MustParse(`(S\NP)/NP`))
	assert.ErrorIs(t, err, ErrArityMismatch)

	d, err := Recategorize(drs(t, `[x| man(x)]`, "N", "x"), ccg.NP)
	require.NoError(t, err)
	assert.Equal(t, ccg.NP, d.Category())
}
