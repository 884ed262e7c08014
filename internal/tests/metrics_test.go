package tests

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

// counterValue reads a counter from the default registry. Counters are
// process-global, so tests compare deltas rather than absolute values.
func counterValue(t *testing.T, name string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	return 0
}

func TestRegister_IncrementsRegistrationCounter(t *testing.T) {
	svc, _, _, _, _, _ := newAuthFixture(t)
	before := counterValue(t, "registrations_total")

	if err := svc.Register(context.Background(), "0691230001", "Besnik Leka", "TIA"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if got := counterValue(t, "registrations_total"); got != before+1 {
		t.Errorf("registrations_total = %v, want %v", got, before+1)
	}
}

func TestVerifyOTP_IncrementsLoginCounter(t *testing.T) {
	svc, _, _, _, _, _ := newAuthFixture(t)
	ctx := context.Background()
	if err := svc.Register(ctx, "0691230002", "Mira Dema", "TIA"); err != nil {
		t.Fatalf("register: %v", err)
	}
	before := counterValue(t, "logins_total")

	if _, err := svc.VerifyOTP(ctx, "0691230002", "424242"); err != nil {
		t.Fatalf("verify: %v", err)
	}

	if got := counterValue(t, "logins_total"); got != before+1 {
		t.Errorf("logins_total = %v, want %v", got, before+1)
	}
}

func TestCreateRide_IncrementsPublishCounter(t *testing.T) {
	svc, _, _, userRepo := newRideFixture()
	addDriver(userRepo, "d1")
	before := counterValue(t, "rides_published_total")

	if _, err := svc.CreateRide(context.Background(), "d1", validRideParams()); err != nil {
		t.Fatalf("create ride: %v", err)
	}

	if got := counterValue(t, "rides_published_total"); got != before+1 {
		t.Errorf("rides_published_total = %v, want %v", got, before+1)
	}
}
