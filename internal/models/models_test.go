package models

import "testing"

func TestRsvpStatusValid(t *testing.T) {
	for _, s := range []RsvpStatus{RsvpConfirmed, RsvpWaitlisted, RsvpCancelled} {
		if !s.Valid() {
			t.Errorf("RsvpStatus %q should be valid", s)
		}
	}
	for _, s := range []RsvpStatus{"", "confirmed", "MAYBE"} {
		if s.Valid() {
			t.Errorf("RsvpStatus %q should be invalid", s)
		}
	}
}

func TestSubscriptionStatusValid(t *testing.T) {
	for _, s := range []SubscriptionStatus{
		SubscriptionActive, SubscriptionInactive, SubscriptionCancelled, SubscriptionPastDue,
	} {
		if !s.Valid() {
			t.Errorf("SubscriptionStatus %q should be valid", s)
		}
	}
	for _, s := range []SubscriptionStatus{"", "active", "TRIALING"} {
		if s.Valid() {
			t.Errorf("SubscriptionStatus %q should be invalid", s)
		}
	}
}
