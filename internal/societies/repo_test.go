package societies

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/societyhub-backend/pkg/db/dbtest"
	"github.com/angelmondragon/societyhub-backend/pkg/db/models"
	"github.com/angelmondragon/societyhub-backend/pkg/enums"
	"github.com/angelmondragon/societyhub-backend/pkg/pagination"
)

func strPtr(v string) *string { return &v }

func TestRepositoryApproveIsConditional(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	society := &models.Society{Name: "Palm Grove", ApprovalStatus: enums.ApprovalStatusPending}
	require.NoError(t, repo.Create(ctx, society))
	require.NotEqual(t, uuid.Nil, society.ID)

	approver := uuid.New()
	ok, err := repo.Approve(ctx, society.ID, approver, time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Approve(ctx, society.ID, approver, time.Now().UTC())
	require.NoError(t, err)
	assert.False(t, ok, "second approval must not touch the row")

	got, err := repo.GetByID(ctx, society.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.ApprovalStatusApproved, got.ApprovalStatus)
	require.NotNil(t, got.ApprovedBy)
	assert.Equal(t, approver, *got.ApprovedBy)
}

func TestRepositoryListFilters(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	seed := []*models.Society{
		{Name: "Amber Heights", City: strPtr("Pune"), ApprovalStatus: enums.ApprovalStatusApproved},
		{Name: "Blue Ridge", City: strPtr("Mumbai"), ApprovalStatus: enums.ApprovalStatusApproved},
		{Name: "Cedar Court", City: strPtr("Pune"), ApprovalStatus: enums.ApprovalStatusPending},
	}
	for _, s := range seed {
		require.NoError(t, repo.Create(ctx, s))
	}

	all, err := repo.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "Amber Heights", all[0].Name)

	pune, err := repo.List(ctx, ListFilter{Search: "pune"})
	require.NoError(t, err)
	assert.Len(t, pune, 2)

	approved, err := repo.List(ctx, ListFilter{ApprovedOnly: true, SocietyIDs: []uuid.UUID{seed[0].ID, seed[2].ID}})
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, seed[0].ID, approved[0].ID)

	none, err := repo.List(ctx, ListFilter{SocietyIDs: []uuid.UUID{}})
	require.NoError(t, err)
	assert.Empty(t, none)

	page, err := repo.List(ctx, ListFilter{Params: pagination.Params{Skip: 1, Limit: 1}})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Blue Ridge", page[0].Name)
}

func TestRepositoryDeleteMissing(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
