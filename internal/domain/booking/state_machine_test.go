package booking

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusOngoing, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, false},
		{StatusOngoing, StatusCompleted, true},
		{StatusOngoing, StatusCancelled, true},
		{StatusOngoing, StatusConfirmed, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusOngoing, false},
		{StatusConfirmed, StatusConfirmed, true},
		{StatusCompleted, StatusCompleted, false},
	}

	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestCancellable(t *testing.T) {
	if !Cancellable(StatusPending) || !Cancellable(StatusConfirmed) || !Cancellable(StatusOngoing) {
		t.Fatalf("expected pending/confirmed/ongoing to be cancellable")
	}
	if Cancellable(StatusCompleted) || Cancellable(StatusCancelled) {
		t.Fatalf("expected terminal states to reject cancellation")
	}
}

func TestStatusTerminal(t *testing.T) {
	if !StatusCompleted.Terminal() || !StatusCancelled.Terminal() {
		t.Fatalf("expected completed and cancelled to be terminal")
	}
	if StatusConfirmed.Terminal() {
		t.Fatalf("confirmed must not be terminal")
	}
}
