package transaction

import (
	"testing"
	"time"

	"emjay/models"
	"emjay/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var fixedNow = time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)

func pendingService() models.AvailedService {
	return NewAvailedService("svc-1", 1000, models.ChargeNotFree)
}

func Test_ApplyAvailedUpdate_StartAndFinish(t *testing.T) {
	svc := pendingService()

	ongoing, err := ApplyAvailedUpdate(svc, AvailedUpdate{
		Status:              models.AvailedOngoing,
		Deduction:           100,
		AssignedEmployeeIDs: []string{"emp-1"},
	}, fixedNow)
	require.NoError(t, err)
	require.NotNil(t, ongoing.StartDate)
	assert.Equal(t, fixedNow, *ongoing.StartDate)
	assert.Nil(t, ongoing.EndDate)
	assert.InDelta(t, 360.0, ongoing.EmployeeShare, 1e-9)
	assert.InDelta(t, 540.0, ongoing.CompanyEarnings, 1e-9)

	later := fixedNow.Add(time.Hour)
	done, err := ApplyAvailedUpdate(ongoing, AvailedUpdate{
		Status:              models.AvailedDone,
		Deduction:           100,
		AssignedEmployeeIDs: []string{"emp-1"},
		IsPaid:              true,
	}, later)
	require.NoError(t, err)
	assert.Equal(t, fixedNow, *done.StartDate, "start date is retained")
	assert.Equal(t, later, *done.EndDate)
	assert.True(t, done.IsPaid)
}

func Test_ApplyAvailedUpdate_EditKeepsDates(t *testing.T) {
	svc := pendingService()
	ongoing, err := ApplyAvailedUpdate(svc, AvailedUpdate{Status: models.AvailedOngoing}, fixedNow)
	require.NoError(t, err)

	edited, err := ApplyAvailedUpdate(ongoing, AvailedUpdate{Status: models.AvailedOngoing, Discount: 20}, fixedNow.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, fixedNow, *edited.StartDate)
	assert.Equal(t, 20.0, edited.Discount)
}

func Test_ApplyAvailedUpdate_BackToPendingClearsDates(t *testing.T) {
	svc := pendingService()
	ongoing, err := ApplyAvailedUpdate(svc, AvailedUpdate{Status: models.AvailedOngoing}, fixedNow)
	require.NoError(t, err)

	pending, err := ApplyAvailedUpdate(ongoing, AvailedUpdate{Status: models.AvailedPending}, fixedNow)
	require.NoError(t, err)
	assert.Nil(t, pending.StartDate)
	assert.Nil(t, pending.EndDate)
}

func Test_ApplyAvailedUpdate_FreeService(t *testing.T) {
	got, err := ApplyAvailedUpdate(pendingService(), AvailedUpdate{
		Status:   models.AvailedOngoing,
		Discount: 30,
		IsFree:   true,
	}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, got.Discount)
	assert.Equal(t, 0.0, got.CompanyEarnings)
	assert.True(t, got.IsPaid)
}

func Test_ApplyAvailedUpdate_Rejections(t *testing.T) {
	done, err := ApplyAvailedUpdate(pendingService(), AvailedUpdate{Status: models.AvailedDone, AssignedEmployeeIDs: []string{"e"}}, fixedNow)
	require.NoError(t, err)
	cancelled, err := ApplyAvailedUpdate(pendingService(), AvailedUpdate{Status: models.AvailedCancelled}, fixedNow)
	require.NoError(t, err)

	tests := []struct {
		name    string
		current models.AvailedService
		update  AvailedUpdate
		field   string
	}{
		{"done cannot be cancelled", done, AvailedUpdate{Status: models.AvailedCancelled}, "status"},
		{"cancelled is terminal", cancelled, AvailedUpdate{Status: models.AvailedOngoing}, "status"},
		{"unknown status", pendingService(), AvailedUpdate{Status: "PAUSED"}, "status"},
		{"negative deduction", pendingService(), AvailedUpdate{Status: models.AvailedOngoing, Deduction: -1}, "deduction"},
		{"deduction above price", pendingService(), AvailedUpdate{Status: models.AvailedOngoing, Deduction: 1001}, "deduction"},
		{"negative discount", pendingService(), AvailedUpdate{Status: models.AvailedOngoing, Discount: -5}, "discount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyAvailedUpdate(tt.current, tt.update, fixedNow)
			require.Error(t, err)
			de, ok := utils.AsDomainError(err)
			require.True(t, ok)
			assert.Equal(t, utils.KindValidation, de.Kind)
			assert.Equal(t, tt.field, de.Field)
			assert.Equal(t, tt.current, got, "current value is returned unchanged")
		})
	}
}

func Test_ApplyAvailedUpdate_DoneCanBeReopened(t *testing.T) {
	done, err := ApplyAvailedUpdate(pendingService(), AvailedUpdate{Status: models.AvailedDone}, fixedNow)
	require.NoError(t, err)

	reopened, err := ApplyAvailedUpdate(done, AvailedUpdate{Status: models.AvailedOngoing}, fixedNow.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, models.AvailedOngoing, reopened.Status)
	assert.Nil(t, reopened.EndDate)
}

func Test_ApplyAvailedUpdate_CancelResets(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		from := rapid.SampledFrom([]models.AvailedServiceStatus{
			models.AvailedPending, models.AvailedOngoing, models.AvailedCancelled,
		}).Draw(t, "from")
		price := float64(rapid.IntRange(0, 100_000).Draw(t, "price"))
		start := fixedNow

		current := models.AvailedService{
			ID:                  "a-1",
			ServiceID:           "svc-1",
			Price:               price,
			Discount:            float64(rapid.IntRange(0, 1000).Draw(t, "discount")),
			Deduction:           price / 2,
			CompanyEarnings:     price / 4,
			EmployeeShare:       price / 5,
			AssignedEmployeeIDs: rapid.SliceOf(rapid.StringMatching(`emp-[0-9]{2}`)).Draw(t, "employees"),
			StartDate:           &start,
			Status:              from,
			IsFree:              rapid.Bool().Draw(t, "free"),
			IsPaid:              rapid.Bool().Draw(t, "paid"),
		}

		got, err := ApplyAvailedUpdate(current, AvailedUpdate{
			Status:              models.AvailedCancelled,
			Deduction:           10,
			Discount:            10,
			AssignedEmployeeIDs: []string{"emp-99"},
			IsFree:              true,
		}, fixedNow)
		if err != nil {
			t.Fatalf("cancel from %s: %v", from, err)
		}
		if got.Deduction != 0 || got.Discount != 0 || got.CompanyEarnings != 0 || got.EmployeeShare != 0 {
			t.Fatalf("money fields not reset: %+v", got)
		}
		if len(got.AssignedEmployeeIDs) != 0 || got.StartDate != nil || got.EndDate != nil || got.IsFree || got.IsPaid {
			t.Fatalf("assignment not reset: %+v", got)
		}
		if got.Price != price {
			t.Fatalf("price changed to %v", got.Price)
		}
	})
}
