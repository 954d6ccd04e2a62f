package service

import (
	"testing"

	"github.com/taniyakamboj15/lostandfound-api/internal/constants"
)

func TestValidateClaimTransition(t *testing.T) {
	cases := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{name: "filed_to_proof", from: constants.ClaimStatusFiled, to: constants.ClaimStatusIdentityProofRequested, want: true},
		{name: "filed_to_verified", from: constants.ClaimStatusFiled, to: constants.ClaimStatusVerified, want: true},
		{name: "proof_to_verified", from: constants.ClaimStatusIdentityProofRequested, to: constants.ClaimStatusVerified, want: true},
		{name: "verified_to_awaiting_transfer", from: constants.ClaimStatusVerified, to: constants.ClaimStatusAwaitingTransfer, want: true},
		{name: "verified_to_arrived_on_site", from: constants.ClaimStatusVerified, to: constants.ClaimStatusArrived, want: true},
		{name: "awaiting_transfer_to_in_transit", from: constants.ClaimStatusAwaitingTransfer, to: constants.ClaimStatusInTransit, want: true},
		{name: "awaiting_transfer_to_recovery", from: constants.ClaimStatusAwaitingTransfer, to: constants.ClaimStatusAwaitingRecovery, want: true},
		{name: "recovery_to_in_transit", from: constants.ClaimStatusAwaitingRecovery, to: constants.ClaimStatusInTransit, want: true},
		{name: "in_transit_to_arrived", from: constants.ClaimStatusInTransit, to: constants.ClaimStatusArrived, want: true},
		{name: "arrived_to_booked", from: constants.ClaimStatusArrived, to: constants.ClaimStatusPickupBooked, want: true},
		{name: "booked_to_returned", from: constants.ClaimStatusPickupBooked, to: constants.ClaimStatusReturned, want: true},
		{name: "filed_to_arrived_skips", from: constants.ClaimStatusFiled, to: constants.ClaimStatusArrived, want: false},
		{name: "verified_to_returned_skips", from: constants.ClaimStatusVerified, to: constants.ClaimStatusReturned, want: false},
		{name: "arrived_back_to_verified", from: constants.ClaimStatusArrived, to: constants.ClaimStatusVerified, want: false},
		{name: "returned_is_terminal", from: constants.ClaimStatusReturned, to: constants.ClaimStatusPickupBooked, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := validateClaimTransition(tc.from, tc.to); got != tc.want {
				t.Fatalf("%s -> %s want %v got %v", tc.from, tc.to, tc.want, got)
			}
		})
	}
}

func TestValidateClaimTransitionRejectFromAnyNonTerminal(t *testing.T) {
	nonTerminal := []string{
		constants.ClaimStatusFiled,
		constants.ClaimStatusIdentityProofRequested,
		constants.ClaimStatusVerified,
		constants.ClaimStatusAwaitingTransfer,
		constants.ClaimStatusAwaitingRecovery,
		constants.ClaimStatusInTransit,
		constants.ClaimStatusArrived,
		constants.ClaimStatusPickupBooked,
	}
	for _, from := range nonTerminal {
		if !validateClaimTransition(from, constants.ClaimStatusRejected) {
			t.Fatalf("reject from %s should be allowed", from)
		}
	}
	if validateClaimTransition(constants.ClaimStatusReturned, constants.ClaimStatusRejected) {
		t.Fatalf("reject from returned should be forbidden")
	}
	if validateClaimTransition(constants.ClaimStatusRejected, constants.ClaimStatusRejected) {
		t.Fatalf("reject from rejected should be forbidden")
	}
}

func TestValidateTransferTransition(t *testing.T) {
	cases := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{name: "pending_to_in_transit", from: constants.TransferStatusPending, to: constants.TransferStatusInTransit, want: true},
		{name: "pending_to_recovery", from: constants.TransferStatusPending, to: constants.TransferStatusRecoveryRequired, want: true},
		{name: "pending_to_cancelled", from: constants.TransferStatusPending, to: constants.TransferStatusCancelled, want: true},
		{name: "recovery_to_in_transit", from: constants.TransferStatusRecoveryRequired, to: constants.TransferStatusInTransit, want: true},
		{name: "in_transit_to_arrived", from: constants.TransferStatusInTransit, to: constants.TransferStatusArrived, want: true},
		{name: "in_transit_to_cancelled", from: constants.TransferStatusInTransit, to: constants.TransferStatusCancelled, want: true},
		{name: "pending_to_arrived_skips", from: constants.TransferStatusPending, to: constants.TransferStatusArrived, want: false},
		{name: "arrived_is_terminal", from: constants.TransferStatusArrived, to: constants.TransferStatusCancelled, want: false},
		{name: "cancelled_is_terminal", from: constants.TransferStatusCancelled, to: constants.TransferStatusInTransit, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := validateTransferTransition(tc.from, tc.to); got != tc.want {
				t.Fatalf("%s -> %s want %v got %v", tc.from, tc.to, tc.want, got)
			}
		})
	}
}
