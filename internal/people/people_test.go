package people

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onboard/pkg/domainerrors"
)

func TestSave(t *testing.T) {
	svc := NewService(NewInMemoryStore())
	ctx := context.Background()

	t.Run("valid person", func(t *testing.T) {
		p, err := svc.Save(ctx, Person{Email: "jane@example.com", Name: "Jane Doe", Type: TypeCandidate})
		require.NoError(t, err)
		assert.False(t, p.CreatedAt.IsZero())
	})

	t.Run("blank email rejected", func(t *testing.T) {
		_, err := svc.Save(ctx, Person{Email: "   ", Type: TypeEmployee})
		assert.True(t, domainerrors.HasCode(err, domainerrors.CodeBadRequest))
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		_, err := svc.Save(ctx, Person{Email: "x@example.com", Type: Type("contractor")})
		assert.True(t, domainerrors.HasCode(err, domainerrors.CodeBadRequest))
	})
}

func TestResolve(t *testing.T) {
	store := NewInMemoryStore()
	svc := NewService(store)
	ctx := context.Background()

	_, err := svc.Save(ctx, Person{Email: "jane@example.com", Name: "Jane Doe", Type: TypeCandidate})
	require.NoError(t, err)

	t.Run("known email", func(t *testing.T) {
		p, err := svc.Resolve(ctx, "jane@example.com")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "Jane Doe", p.Name)
	})

	t.Run("unknown email resolves to nil, not an error", func(t *testing.T) {
		p, err := svc.Resolve(ctx, "ghost@example.com")
		require.NoError(t, err)
		assert.Nil(t, p)
	})
}

func TestList(t *testing.T) {
	svc := NewService(NewInMemoryStore())
	ctx := context.Background()

	for _, p := range []Person{
		{Email: "a@example.com", Type: TypeCandidate},
		{Email: "b@example.com", Type: TypeEmployee},
		{Email: "c@example.com", Type: TypeCandidate},
	} {
		_, err := svc.Save(ctx, p)
		require.NoError(t, err)
	}

	candidates, err := svc.List(ctx, TypeCandidate)
	require.NoError(t, err)
	assert.Len(t, candidates, 2)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
