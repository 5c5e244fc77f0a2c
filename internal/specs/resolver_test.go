package specs

import (
	"testing"

	"github.com/enershare/ewhflex/internal/domain/model"
)

func TestResolveNilReturnsDefaults(t *testing.T) {
	r := NewResolver()
	resolved := r.Resolve(nil)
	if *resolved != *Defaults() {
		t.Fatalf("expected defaults, got %+v", resolved)
	}
}

func TestResolveKeepsSuppliedValues(t *testing.T) {
	r := NewResolver()
	supplied := &model.EWHSpecs{
		Capacity:       150,
		Power:          2400,
		MaxTemp:        70,
		UserComfTemp:   50,
		Tariff:         model.TariffDual,
		PriceSimple:    0.2,
		PriceDualDay:   0.22,
		PriceDualNight: 0.08,
		TariffSimple:   0.33,
		TariffDual:     0.44,
	}

	resolved := r.Resolve(supplied)
	if *resolved != *supplied {
		t.Fatalf("expected supplied specs unchanged, got %+v", resolved)
	}
}

func TestResolveFillsGaps(t *testing.T) {
	r := NewResolver()
	resolved := r.Resolve(&model.EWHSpecs{Capacity: 120})

	defaults := Defaults()
	if resolved.Capacity != 120 {
		t.Fatalf("expected supplied capacity kept, got %d", resolved.Capacity)
	}
	if resolved.Power != defaults.Power {
		t.Fatalf("expected default power, got %d", resolved.Power)
	}
	if resolved.Tariff != defaults.Tariff {
		t.Fatalf("expected default tariff, got %d", resolved.Tariff)
	}
	if resolved.PriceSimple != defaults.PriceSimple {
		t.Fatalf("expected default simple price, got %v", resolved.PriceSimple)
	}
}

func TestResolveRejectsUnknownTariffSelection(t *testing.T) {
	r := NewResolver()
	resolved := r.Resolve(&model.EWHSpecs{Tariff: 9})
	if resolved.Tariff != Defaults().Tariff {
		t.Fatalf("expected default tariff for unknown selection, got %d", resolved.Tariff)
	}
}

func TestResolveDoesNotMutateInput(t *testing.T) {
	r := NewResolver()
	supplied := &model.EWHSpecs{Capacity: 120}
	_ = r.Resolve(supplied)
	if supplied.Power != 0 {
		t.Fatalf("expected input untouched, got power %d", supplied.Power)
	}
}
