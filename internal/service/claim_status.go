package service

import "github.com/taniyakamboj15/lostandfound-api/internal/constants"

// claimTransitions 认领状态允许的流转表
var claimTransitions = map[string][]string{
	constants.ClaimStatusFiled: {
		constants.ClaimStatusIdentityProofRequested,
		constants.ClaimStatusVerified,
	},
	constants.ClaimStatusIdentityProofRequested: {
		constants.ClaimStatusVerified,
	},
	constants.ClaimStatusVerified: {
		constants.ClaimStatusAwaitingTransfer,
		constants.ClaimStatusAwaitingRecovery,
		constants.ClaimStatusArrived,
	},
	constants.ClaimStatusAwaitingTransfer: {
		constants.ClaimStatusAwaitingRecovery,
		constants.ClaimStatusInTransit,
	},
	constants.ClaimStatusAwaitingRecovery: {
		constants.ClaimStatusInTransit,
	},
	constants.ClaimStatusInTransit: {
		constants.ClaimStatusArrived,
	},
	constants.ClaimStatusArrived: {
		constants.ClaimStatusPickupBooked,
	},
	constants.ClaimStatusPickupBooked: {
		constants.ClaimStatusReturned,
	},
}

// validateClaimTransition 校验认领状态流转是否允许
func validateClaimTransition(from, to string) bool {
	if to == constants.ClaimStatusRejected {
		return !isClaimTerminal(from)
	}
	for _, allowed := range claimTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// isClaimTerminal 判断是否终态
func isClaimTerminal(status string) bool {
	return status == constants.ClaimStatusReturned || status == constants.ClaimStatusRejected
}

// transferTransitions 调拨状态允许的流转表
var transferTransitions = map[string][]string{
	constants.TransferStatusPending: {
		constants.TransferStatusRecoveryRequired,
		constants.TransferStatusInTransit,
		constants.TransferStatusCancelled,
	},
	constants.TransferStatusRecoveryRequired: {
		constants.TransferStatusInTransit,
	},
	constants.TransferStatusInTransit: {
		constants.TransferStatusArrived,
		constants.TransferStatusCancelled,
	},
}

// validateTransferTransition 校验调拨状态流转是否允许
func validateTransferTransition(from, to string) bool {
	for _, allowed := range transferTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
