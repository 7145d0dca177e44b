package tariff

import "math"

// TruckCostBreakdown is the itemized cost for one truck class across a
// given quantity, distance, and duration.
type TruckCostBreakdown struct {
	TruckClass   string  `json:"truck_class"`
	Quantity     int     `json:"quantity"`
	FixedCost    float64 `json:"fixed_cost"`
	TransportCost float64 `json:"transport_cost"`
	LoadingCost  float64 `json:"loading_cost"`
	StorageCost  float64 `json:"storage_cost"`
	InsuranceCost float64 `json:"insurance_cost"`
	Subtotal     float64 `json:"subtotal"`
	Total        float64 `json:"total"`
	PerTruck     float64 `json:"per_truck"`
}

// CalculateTruckCost computes a truck class's breakdown for quantity
// trucks over distanceKM, durationDays, and declared cargoValue,
// following the reference implementation's calculate_truck_cost.
func CalculateTruckCost(profile Profile, fees AdditionalFees, quantity int, distanceKM, durationDays, cargoValue float64) TruckCostBreakdown {
	if quantity < 0 {
		quantity = 0
	}
	q := float64(quantity)

	fixed := profile.FixedCost * q
	transport := profile.PerKmCost * distanceKM * q
	loading := profile.PerHourCost * profile.LoadingHours * q

	var insurance float64
	if cargoValue > 0 {
		insurance = cargoValue * fees.InsuranceRate
	}

	var storage float64
	if durationDays > 1 {
		storage = fees.OvernightStorage * (durationDays - 1) * q
	}

	subtotal := fixed + transport + loading + storage
	total := subtotal + insurance

	var perTruck float64
	if quantity > 0 {
		perTruck = total / q
	}

	return TruckCostBreakdown{
		TruckClass:    profile.TruckClass,
		Quantity:      quantity,
		FixedCost:     fixed,
		TransportCost: transport,
		LoadingCost:   loading,
		StorageCost:   storage,
		InsuranceCost: insurance,
		Subtotal:      subtotal,
		Total:         total,
		PerTruck:      perTruck,
	}
}

// ScenarioCost aggregates truck-class costs plus global surcharges for
// one complete fleet scenario.
type ScenarioCost struct {
	TotalCost         float64               `json:"total_cost"`
	TruckCosts        []TruckCostBreakdown  `json:"truck_costs"`
	EscortCost        float64               `json:"escort_cost,omitempty"`
	WeekendSurcharge  float64               `json:"weekend_surcharge,omitempty"`
	CostPerKm         float64               `json:"cost_per_km"`
}

// TruckQuantity is one (class, count) pair within a scenario.
type TruckQuantity struct {
	TruckClass string
	Quantity   int
}

// CalculateScenarioCost computes the total cost of a scenario composed
// of several truck classes, following calculate_scenario_cost.
func CalculateScenarioCost(profiles []Profile, fees AdditionalFees, trucks []TruckQuantity, distanceKM, durationDays, cargoValue float64, isWeekend, needsEscort bool) ScenarioCost {
	var total float64
	breakdowns := make([]TruckCostBreakdown, 0, len(trucks))

	for _, tq := range trucks {
		profile := FindByClass(profiles, tq.TruckClass)
		if profile == nil {
			continue
		}
		b := CalculateTruckCost(*profile, fees, tq.Quantity, distanceKM, durationDays, cargoValue)
		breakdowns = append(breakdowns, b)
		total += b.Total
	}

	result := ScenarioCost{TruckCosts: breakdowns}

	if needsEscort {
		result.EscortCost = fees.EscortConvoy
		total += result.EscortCost
	}
	if isWeekend {
		result.WeekendSurcharge = total * fees.WeekendSurcharge
		total += result.WeekendSurcharge
	}

	result.TotalCost = math.Round(total)
	if distanceKM > 0 {
		result.CostPerKm = math.Round(total / distanceKM)
	}
	return result
}

// ScenarioComparison, returned by CompareScenarios, reports which of
// several priced scenarios is cheapest and the savings versus the most
// expensive, following compare_scenarios.
type ScenarioComparison struct {
	CheapestID            string  `json:"cheapest_scenario"`
	MostExpensiveID       string  `json:"most_expensive_scenario"`
	PotentialSavings      float64 `json:"potential_savings"`
	PotentialSavingsPct   float64 `json:"potential_savings_percent"`
	Recommendation        string  `json:"recommendation"`
}

// NamedCost pairs a scenario identifier with its priced total.
type NamedCost struct {
	ID   string
	Cost float64
}

func CompareScenarios(scenarios []NamedCost) *ScenarioComparison {
	if len(scenarios) == 0 {
		return nil
	}

	cheapest, mostExpensive := scenarios[0], scenarios[0]
	for _, s := range scenarios[1:] {
		if s.Cost < cheapest.Cost {
			cheapest = s
		}
		if s.Cost > mostExpensive.Cost {
			mostExpensive = s
		}
	}

	savings := mostExpensive.Cost - cheapest.Cost
	var savingsPct float64
	if mostExpensive.Cost > 0 {
		savingsPct = math.Round((savings/mostExpensive.Cost)*1000) / 10
	}

	return &ScenarioComparison{
		CheapestID:          cheapest.ID,
		MostExpensiveID:     mostExpensive.ID,
		PotentialSavings:    math.Round(savings),
		PotentialSavingsPct: savingsPct,
		Recommendation:      cheapest.ID,
	}
}
