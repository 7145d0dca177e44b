package tariff

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTruckCostBasic(t *testing.T) {
	profile := Profile{TruckClass: "26t", FixedCost: 200000, PerKmCost: 450, PerHourCost: 6500, LoadingHours: 3}
	fees := DefaultAdditionalFees()

	b := CalculateTruckCost(profile, fees, 2, 100, 1, 0)
	assert.Equal(t, 400000.0, b.FixedCost)
	assert.Equal(t, 90000.0, b.TransportCost)
	assert.Equal(t, 39000.0, b.LoadingCost)
	assert.Zero(t, b.StorageCost)
	assert.Zero(t, b.InsuranceCost)
	assert.Equal(t, b.FixedCost+b.TransportCost+b.LoadingCost, b.Subtotal)
	assert.Equal(t, b.Subtotal, b.Total)
	assert.Equal(t, b.Total/2, b.PerTruck)
}

func TestCalculateTruckCostAppliesStorageAfterFirstDay(t *testing.T) {
	profile := Profile{TruckClass: "19t", FixedCost: 150000, PerKmCost: 350, PerHourCost: 5000, LoadingHours: 2}
	fees := DefaultAdditionalFees()

	b := CalculateTruckCost(profile, fees, 1, 50, 3, 0)
	assert.Equal(t, fees.OvernightStorage*2, b.StorageCost)
}

func TestCalculateTruckCostAppliesInsuranceWhenCargoValueDeclared(t *testing.T) {
	profile := Profile{TruckClass: "40t", FixedCost: 300000, PerKmCost: 600, PerHourCost: 8000, LoadingHours: 4}
	fees := DefaultAdditionalFees()

	b := CalculateTruckCost(profile, fees, 1, 10, 1, 1_000_000)
	assert.Equal(t, 1_000_000*fees.InsuranceRate, b.InsuranceCost)
	assert.Equal(t, b.Subtotal+b.InsuranceCost, b.Total)
}

func TestCalculateScenarioCostWithEscortAndWeekend(t *testing.T) {
	profiles := BuiltinProfiles()
	fees := DefaultAdditionalFees()

	trucks := []TruckQuantity{{TruckClass: "26t", Quantity: 1}}
	withoutExtras := CalculateScenarioCost(profiles, fees, trucks, 100, 1, 0, false, false)
	withExtras := CalculateScenarioCost(profiles, fees, trucks, 100, 1, 0, true, true)

	assert.Greater(t, withExtras.TotalCost, withoutExtras.TotalCost)
	assert.Equal(t, fees.EscortConvoy, withExtras.EscortCost)
	assert.Greater(t, withExtras.WeekendSurcharge, 0.0)
}

func TestCalculateScenarioCostSkipsUnknownTruckClass(t *testing.T) {
	profiles := BuiltinProfiles()
	fees := DefaultAdditionalFees()
	trucks := []TruckQuantity{{TruckClass: "does-not-exist", Quantity: 3}}

	result := CalculateScenarioCost(profiles, fees, trucks, 100, 1, 0, false, false)
	assert.Zero(t, result.TotalCost)
	assert.Empty(t, result.TruckCosts)
}

func TestCompareScenariosPicksCheapest(t *testing.T) {
	cmp := CompareScenarios([]NamedCost{
		{ID: "cost_optimal", Cost: 500000},
		{ID: "min_trucks", Cost: 650000},
		{ID: "balanced", Cost: 600000},
	})
	require.NotNil(t, cmp)
	assert.Equal(t, "cost_optimal", cmp.CheapestID)
	assert.Equal(t, "min_trucks", cmp.MostExpensiveID)
	assert.Equal(t, "cost_optimal", cmp.Recommendation)
	assert.Equal(t, 150000.0, cmp.PotentialSavings)
}

func TestCompareScenariosEmpty(t *testing.T) {
	assert.Nil(t, CompareScenarios(nil))
}

func TestFindByClass(t *testing.T) {
	profiles := BuiltinProfiles()
	p := FindByClass(profiles, "40t")
	require.NotNil(t, p)
	assert.Equal(t, "Semi-remorque 40T", p.Name)

	assert.Nil(t, FindByClass(profiles, "missing"))
}

func TestSaveAndLoadCustomProfiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tariffs.json")

	profiles := []Profile{
		{ID: "custom-van", TruckClass: "van", Name: "Custom Van", FixedCost: 80000, PerKmCost: 220, PerHourCost: 3200, LoadingHours: 1},
	}
	require.NoError(t, SaveCustomProfiles(path, profiles))

	loaded, err := LoadCustomProfiles(path)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Custom Van", loaded[0].Name)
	assert.False(t, loaded[0].IsBuiltIn)
}

func TestLoadCustomProfilesMissingFileReturnsEmpty(t *testing.T) {
	dir := t.TempDir()
	loaded, err := LoadCustomProfiles(filepath.Join(dir, "absent.json"))
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
