package service

import (
	apperrors "atlas3-backend/internal/common/errors"
)

const maxCollabDuration = 168 // hours

// User-facing failures. Messages are rendered to the client as is.
var (
	ErrMaxWinners              = apperrors.NewValidationError("Max winners must be a positive integer")
	ErrInvalidType             = apperrors.NewValidationError("Invalid giveaway type")
	ErrNameTooLong             = apperrors.NewValidationError("Name must be at most 150 characters")
	ErrDescriptionTooLong      = apperrors.NewValidationError("Description must be at most 5000 characters")
	ErrProjectNotPublished     = apperrors.NewValidationError("Project is not published")
	ErrPaymentTokenNetwork     = apperrors.NewValidationError("Invalid payment token network")
	ErrPaymentTokenAmount      = apperrors.NewValidationError("Payment token amount must be positive")
	ErrInvalidCollabType       = apperrors.NewValidationError("Invalid collab type")
	ErrHolderRulesRequired     = apperrors.NewValidationError("Holder rules are required to receive spots after mint")
	ErrDeadlineRequired        = apperrors.NewValidationError("Collab request deadline is required")
	ErrDeadlinePassed          = apperrors.NewValidationError("Collab request deadline must be in the future")
	ErrAllowlistRequired       = apperrors.NewValidationError("Allowlist must be configured before giving spots")
	ErrDiscordGuildRuleMissing = apperrors.NewValidationError("A Discord server rule is required to give spots")
	ErrCollabDuration          = apperrors.NewValidationError("Collab duration must be between 1 and 168 hours")
	ErrCollabTargetsRequired   = apperrors.NewValidationError("At least one collab project is required")
	ErrEndDateRequired         = apperrors.NewValidationError("End Date is required")
	ErrEndDatePassed           = apperrors.NewValidationError("End Date must be in the future")
	ErrGiveawayIDRequired      = apperrors.NewValidationError("Giveaway id is required")

	ErrForbidden            = apperrors.NewForbiddenError("You are not allowed to manage giveaways")
	ErrProjectNotFound      = apperrors.New(apperrors.ErrCodeProjectNotFound, "Project not found")
	ErrCollabProjectMissing = apperrors.New(apperrors.ErrCodeProjectNotFound, "Collab project not found")
	ErrGiveawayNotFound     = apperrors.New(apperrors.ErrCodeGiveawayNotFound, "Giveaway not found")
	ErrProjectNotEligible   = apperrors.New(apperrors.ErrCodeProjectNotEligible, "Project not eligible")
	ErrProtectedRuleRemoved = apperrors.New(apperrors.ErrCodeProtectedRule, "You cannot remove rules added by the collab partner")
	ErrProtectedRuleChanged = apperrors.New(apperrors.ErrCodeProtectedRule, "You cannot change rules added by the collab partner")
)
