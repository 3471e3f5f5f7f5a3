package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lawbook/internal/errors"
)

func isStorage(err error) bool {
	return errors.Is(err, ErrStorage)
}

func TestAdd_CaseInsensitiveUniqueness(t *testing.T) {
	variants := [][2]string{
		{"Gravity", "gravity"},
		{"Gravity", "GRAVITY"},
		{"Newton's Second Law", "nEWTON'S sECOND lAW"},
		{"Закон Ома", "ЗАКОН ОМА"},
		{"Straße", "STRASSE"},
	}

	for _, v := range variants {
		t.Run(v[0]+"/"+v[1], func(t *testing.T) {
			s := createTestStore(t)
			ctx := context.Background()

			require.NoError(t, s.Add(ctx, Law{Name: v[0], Formula: "f", Section: "s"}))

			err := s.Add(ctx, Law{Name: v[1], Formula: "other", Section: "other"})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDuplicateName), "got %v", err)
			assert.False(t, errors.Is(err, ErrNotFound))
			assert.Equal(t, 1, countRows(t, s), "rejected insert must not write")
		})
	}
}

func TestAdd_DuplicateIsConflict(t *testing.T) {
	s := createTestStore(t)
	mustAdd(t, s, "Gravity", "", "")

	err := s.Add(context.Background(), Law{Name: "gravity"})
	assert.True(t, errors.IsConflict(err))
	assert.Contains(t, err.Error(), "law already exists")
}

func TestAdd_AssignsSurrogateID(t *testing.T) {
	s := createTestStore(t, WithIDGenerator(NewFixedGenerator("law-1", "law-2")))
	mustAdd(t, s, "Gravity", "", "")
	mustAdd(t, s, "Entropy", "", "")

	law, found, err := s.FindByName(context.Background(), "entropy")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "law-2", law.ID)
}

func TestFindByName_CaseInsensitiveRetrieval(t *testing.T) {
	s := createTestStore(t)
	mustAdd(t, s, "Pythagorean Theorem", "a^2 + b^2 = c^2", "Geometry")

	for _, query := range []string{
		"Pythagorean Theorem",
		"pythagorean theorem",
		"PYTHAGOREAN THEOREM",
		"pYtHaGoReAn ThEoReM",
	} {
		t.Run(query, func(t *testing.T) {
			law, found, err := s.FindByName(context.Background(), query)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, "Pythagorean Theorem", law.Name, "original casing preserved")
			assert.Equal(t, "a^2 + b^2 = c^2", law.Formula)
			assert.Equal(t, "Geometry", law.Section)
		})
	}
}

func TestFindByName_MissingIsNotAnError(t *testing.T) {
	s := createTestStore(t)

	law, found, err := s.FindByName(context.Background(), "Nothing Here")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, Law{}, law)
}

func TestNotFoundContract(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	mustAdd(t, s, "Gravity", "F = G*m1*m2/r^2", "Physics")
	mustAdd(t, s, "Deleted", "x", "y")
	require.NoError(t, s.Delete(ctx, "Deleted"))

	for _, name := range []string{"Never Added", "deleted"} {
		t.Run(name, func(t *testing.T) {
			_, found, err := s.FindByName(ctx, name)
			require.NoError(t, err)
			assert.False(t, found)

			assert.True(t, errors.Is(s.UpdateFormula(ctx, name, "f"), ErrNotFound))
			assert.True(t, errors.Is(s.UpdateSection(ctx, name, "s"), ErrNotFound))
			assert.True(t, errors.Is(s.Rename(ctx, name, "Fresh Name"), ErrNotFound))
			assert.True(t, errors.Is(s.Delete(ctx, name), ErrNotFound))
		})
	}

	// No mutation happened to the surviving row.
	laws, err := s.ListLaws(ctx)
	require.NoError(t, err)
	require.Len(t, laws, 1)
	assert.Equal(t, "Gravity", laws[0].Name)
	assert.Equal(t, "F = G*m1*m2/r^2", laws[0].Formula)
	assert.Equal(t, "Physics", laws[0].Section)
}

func TestUpdateFormula_Isolation(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	mustAdd(t, s, "Ohm's Law", "V = I*R", "Electricity")

	require.NoError(t, s.UpdateFormula(ctx, "OHM'S LAW", "I = V/R"))

	law, found, err := s.FindByName(ctx, "ohm's law")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Ohm's Law", law.Name)
	assert.Equal(t, "I = V/R", law.Formula)
	assert.Equal(t, "Electricity", law.Section)
}

func TestUpdateSection_Isolation(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	mustAdd(t, s, "Ohm's Law", "V = I*R", "Electricity")

	require.NoError(t, s.UpdateSection(ctx, "ohm's law", "Circuits"))

	law, _, err := s.FindByName(ctx, "Ohm's Law")
	require.NoError(t, err)
	assert.Equal(t, "Ohm's Law", law.Name)
	assert.Equal(t, "V = I*R", law.Formula)
	assert.Equal(t, "Circuits", law.Section)
}

func TestDelete_Finality(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	mustAdd(t, s, "Gravity", "old", "Physics")

	require.NoError(t, s.Delete(ctx, "GRAVITY"))

	_, found, err := s.FindByName(ctx, "Gravity")
	require.NoError(t, err)
	assert.False(t, found)

	// The name is free again, in any casing.
	require.NoError(t, s.Add(ctx, Law{Name: "gravity", Formula: "new", Section: "Physics"}))
	law, found, err := s.FindByName(ctx, "Gravity")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "gravity", law.Name)
	assert.Equal(t, "new", law.Formula)
}

func TestRename_Collision(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	mustAdd(t, s, "Gravity", "F = G*m1*m2/r^2", "Physics")
	mustAdd(t, s, "Entropy", "S = k*ln(W)", "Thermodynamics")

	err := s.Rename(ctx, "Gravity", "entropy")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateName), "got %v", err)

	names, err := s.ListNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Gravity", "Entropy"}, names)

	law, _, err := s.FindByName(ctx, "gravity")
	require.NoError(t, err)
	assert.Equal(t, "F = G*m1*m2/r^2", law.Formula)
}

func TestRename_Success(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	mustAdd(t, s, "Gravity", "F = G*m1*m2/r^2", "Physics")

	require.NoError(t, s.Rename(ctx, "gravity", "Law of Universal Gravitation"))

	_, found, err := s.FindByName(ctx, "Gravity")
	require.NoError(t, err)
	assert.False(t, found, "old name no longer addresses the law")

	law, found, err := s.FindByName(ctx, "law of universal gravitation")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Law of Universal Gravitation", law.Name)
	assert.Equal(t, "F = G*m1*m2/r^2", law.Formula)
	assert.Equal(t, "Physics", law.Section)

	// Old name is free for reuse.
	require.NoError(t, s.Add(ctx, Law{Name: "Gravity"}))
}

func TestRename_CasingOfSelf(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	mustAdd(t, s, "gravity", "", "")

	require.NoError(t, s.Rename(ctx, "GRAVITY", "Gravity"))

	names, err := s.ListNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Gravity"}, names)
}

func TestListNames(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	names, err := s.ListNames(ctx)
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)

	mustAdd(t, s, "Gravity", "", "")
	mustAdd(t, s, "Entropy", "", "")
	mustAdd(t, s, "Ohm's Law", "", "")

	names, err = s.ListNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Gravity", "Entropy", "Ohm's Law"}, names)
}

func TestListLaws_Empty(t *testing.T) {
	s := createTestStore(t)

	laws, err := s.ListLaws(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, laws)
	assert.Empty(t, laws)
}

func TestImport_AllOrNothing(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	mustAdd(t, s, "Gravity", "", "")

	_, err := s.Import(ctx, []Law{
		{Name: "Entropy"},
		{Name: "GRAVITY"},
		{Name: "Ohm's Law"},
	}, ImportOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateName))
	assert.Equal(t, 1, countRows(t, s), "failed batch must not write")
}

func TestImport_DuplicateWithinBatch(t *testing.T) {
	s := createTestStore(t)

	_, err := s.Import(context.Background(), []Law{
		{Name: "Entropy"},
		{Name: "entropy"},
	}, ImportOptions{})
	assert.True(t, errors.Is(err, ErrDuplicateName))
	assert.Equal(t, 0, countRows(t, s))
}

func TestImport_SkipExisting(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	mustAdd(t, s, "Gravity", "kept", "Physics")

	result, err := s.Import(ctx, []Law{
		{Name: "Entropy", Formula: "S = k*ln(W)", Section: "Thermodynamics"},
		{Name: "gravity", Formula: "replaced?", Section: "no"},
		{Name: "ENTROPY"},
	}, ImportOptions{SkipExisting: true})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Added)
	assert.Equal(t, []string{"gravity", "ENTROPY"}, result.Skipped)

	law, _, err := s.FindByName(ctx, "Gravity")
	require.NoError(t, err)
	assert.Equal(t, "kept", law.Formula)
}

// TestEndToEnd walks one law through its whole lifecycle.
func TestEndToEnd(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, Law{Name: "Newton's Second Law", Formula: "F = m*a", Section: "Mechanics"}))

	law, found, err := s.FindByName(ctx, "NEWTON'S SECOND LAW")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Newton's Second Law", law.Name)
	assert.Equal(t, "F = m*a", law.Formula)
	assert.Equal(t, "Mechanics", law.Section)

	require.NoError(t, s.UpdateSection(ctx, "newton's second law", "Classical Mechanics"))
	law, found, err = s.FindByName(ctx, "Newton's Second Law")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Classical Mechanics", law.Section)
	assert.Equal(t, "F = m*a", law.Formula)

	require.NoError(t, s.Delete(ctx, "Newton's Second Law"))
	_, found, err = s.FindByName(ctx, "Newton's Second Law")
	require.NoError(t, err)
	assert.False(t, found)

	err = s.Delete(ctx, "Newton's Second Law")
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
}

func TestOperations_AfterClose(t *testing.T) {
	s := createTestStore(t)
	require.NoError(t, s.Close())
	ctx := context.Background()

	_, _, err := s.FindByName(ctx, "Gravity")
	require.Error(t, err)
	assert.True(t, isStorage(err))
	assert.False(t, errors.Is(err, ErrNotFound))

	err = s.Add(ctx, Law{Name: "Gravity"})
	assert.True(t, isStorage(err))
	assert.False(t, errors.Is(err, ErrDuplicateName))

	err = s.Delete(ctx, "Gravity")
	assert.True(t, isStorage(err))
	assert.False(t, errors.Is(err, ErrNotFound))
}
