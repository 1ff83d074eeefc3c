package user_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	userdb "github.com/Black-And-White-Club/wordle-bot/app/modules/user/infrastructure/repositories"
	wordledb "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/repositories"
	"github.com/Black-And-White-Club/wordle-bot/integration_tests/testutils"
	"github.com/Black-And-White-Club/wordle-bot/internal/puzzledate"
)

func TestCreatePlaceholder_IsIdempotent(t *testing.T) {
	env := testutils.GetTestEnv(t)
	repo := userdb.NewRepository(env.DB)

	first, created, err := repo.CreatePlaceholder(env.Ctx, nil, "111")
	require.NoError(t, err)
	require.True(t, created)
	require.True(t, first.IsPlaceholder)

	second, created, err := repo.CreatePlaceholder(env.Ctx, nil, "111")
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, first.ID, second.ID)
}

func TestUpsertUser_FillsPlaceholder(t *testing.T) {
	env := testutils.GetTestEnv(t)
	repo := userdb.NewRepository(env.DB)

	_, _, err := repo.CreatePlaceholder(env.Ctx, nil, "222")
	require.NoError(t, err)

	created, err := repo.UpsertUser(env.Ctx, nil, &userdb.User{
		UserID:     "222",
		Username:   "alice",
		GuildName:  "Alice",
		GlobalName: "Alice G",
	})
	require.NoError(t, err)
	require.False(t, created, "placeholder row is updated in place")

	got, err := repo.GetUserByUserID(env.Ctx, nil, "222")
	require.NoError(t, err)
	require.False(t, got.IsPlaceholder)
	require.Equal(t, "Alice", got.GuildName)

	created, err = repo.UpsertUser(env.Ctx, nil, &userdb.User{UserID: "333", Username: "bob", GuildName: "bob", GlobalName: "bob"})
	require.NoError(t, err)
	require.True(t, created)
}

func TestFindUserByDisplayName(t *testing.T) {
	env := testutils.GetTestEnv(t)
	repo := userdb.NewRepository(env.DB)

	for _, u := range []*userdb.User{
		{UserID: "1", Username: "carol", GuildName: "Carol", GlobalName: "carol"},
		{UserID: "2", Username: "dave", GuildName: "carol", GlobalName: "Dave"},
	} {
		_, err := repo.UpsertUser(env.Ctx, nil, u)
		require.NoError(t, err)
	}
	_, _, err := repo.CreatePlaceholder(env.Ctx, nil, "3")
	require.NoError(t, err)

	got, err := repo.FindUserByDisplayName(env.Ctx, nil, "carol")
	require.NoError(t, err)
	require.Equal(t, "2", got.UserID, "guild name wins over username")

	got, err = repo.FindUserByDisplayName(env.Ctx, nil, "Dave")
	require.NoError(t, err)
	require.Equal(t, "2", got.UserID)

	_, err = repo.FindUserByDisplayName(env.Ctx, nil, "nobody")
	require.ErrorIs(t, err, userdb.ErrNotFound)
}

func TestListUsersWithOutcomes(t *testing.T) {
	env := testutils.GetTestEnv(t)
	users := userdb.NewRepository(env.DB)
	outcomes := wordledb.NewRepository(env.DB)
	gen := testutils.NewTestDataGenerator(42)

	generated := gen.GenerateUsers(3)
	for _, u := range generated {
		_, err := users.UpsertUser(env.Ctx, nil, u)
		require.NoError(t, err)
	}

	date, err := puzzledate.Parse("2025-06-01")
	require.NoError(t, err)
	require.NoError(t, outcomes.UpsertOutcome(env.Ctx, nil, &wordledb.Outcome{UserID: generated[1].UserID, PuzzleDate: date}))

	active, err := users.ListUsersWithOutcomes(env.Ctx, nil)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, generated[1].UserID, active[0].UserID)
}
