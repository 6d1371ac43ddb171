package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotReservation/internal/domain"
	"github.com/m04kA/SMC-SlotReservation/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-SlotReservation/pkg/ptr"
)

func TestRepository_CreateAndViews(t *testing.T) {
	db := storagetest.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()

	start := time.Date(2030, 9, 22, 13, 0, 0, 0, time.UTC)
	svc := storagetest.InsertService(t, db, "Consulting", 60)
	slot := storagetest.InsertSlot(t, db, svc.ID, start, time.Hour)

	created, err := repo.Create(ctx, &domain.Booking{
		ID:          uuid.NewString(),
		CompanyName: "Acme",
		ContactName: "Jane Doe",
		Phone:       "11987654321",
		ServiceID:   svc.ID,
		TimeSlotID:  slot.ID,
	})
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = repo.Create(ctx, &domain.Booking{
		ID:          uuid.NewString(),
		CompanyName: "Other",
		ContactName: "John",
		Phone:       "11911112222",
		ServiceID:   svc.ID,
		TimeSlotID:  slot.ID,
	})
	assert.ErrorIs(t, err, ErrSlotAlreadyBooked)

	_, err = repo.Create(ctx, &domain.Booking{
		ID:          uuid.NewString(),
		CompanyName: "Ghost",
		ContactName: "Nobody",
		Phone:       "11911112222",
		ServiceID:   svc.ID,
		TimeSlotID:  uuid.NewString(),
	})
	assert.ErrorIs(t, err, ErrReferenceNotFound)

	view, err := repo.GetViewByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Consulting", view.ServiceName)
	assert.True(t, view.StartAt.Equal(start))

	_, err = repo.GetViewByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_FilterAndPaginate(t *testing.T) {
	db := storagetest.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()

	svc := storagetest.InsertService(t, db, "Consulting", 30)
	base := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)

	const total = 45
	for i := 0; i < total; i++ {
		slot := storagetest.InsertSlot(t, db, svc.ID, base.Add(time.Duration(i)*time.Hour), 30*time.Minute)
		company := "Company"
		if i == 7 {
			company = "100% Real_Co"
		}
		_, err := repo.Create(ctx, &domain.Booking{
			ID:          uuid.NewString(),
			CompanyName: company,
			ContactName: "Contact",
			Phone:       "11987654321",
			ServiceID:   svc.ID,
			TimeSlotID:  slot.ID,
		})
		require.NoError(t, err)
	}

	filter := domain.BookingsFilter{ServiceName: ptr.Ptr("Consulting")}
	count, err := repo.CountViews(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, total, count)

	seen := make(map[string]bool)
	var all []domain.BookingView
	for offset := 0; offset < total+20; offset += 20 {
		page, err := repo.ListViews(ctx, filter, 20, offset)
		require.NoError(t, err)
		for _, v := range page {
			assert.False(t, seen[v.BookingID], "duplicate %s", v.BookingID)
			seen[v.BookingID] = true
		}
		all = append(all, page...)
	}
	assert.Len(t, all, total)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].CreatedAt.After(all[i-1].CreatedAt))
	}

	count, err = repo.CountViews(ctx, domain.BookingsFilter{SearchText: ptr.Ptr("0% real_")})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = repo.CountViews(ctx, domain.BookingsFilter{SearchText: ptr.Ptr("%")})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	from := base.Add(10 * time.Hour)
	to := base.Add(12 * time.Hour)
	count, err = repo.CountViews(ctx, domain.BookingsFilter{StartFrom: &from, StartTo: &to})
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	count, err = repo.CountViews(ctx, domain.BookingsFilter{ServiceName: ptr.Ptr("consulting")})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
