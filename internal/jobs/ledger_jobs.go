package jobs

import (
	"context"
	"time"

	"swiftpay-backend/internal/logger"
)

// staleRequestAge is how long a request may sit pending before the receiver
// gets a reminder.
const staleRequestAge = 24 * time.Hour

// SendPendingRequestReminders emails every account that has a money request
// pending for more than a day.
func (jr *JobRunner) SendPendingRequestReminders() {
	jr.runWithRecovery("SendPendingRequestReminders", func() {
		ctx := context.Background()
		cutoff := time.Now().Add(-staleRequestAge)

		stale, err := jr.store.Requests.ListStalePending(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list stale pending requests", "error", err)
			return
		}
		if len(stale) == 0 {
			logger.Info("No stale pending requests")
			return
		}

		reminded := 0
		for _, req := range stale {
			receiver, err := jr.store.Accounts.GetByID(ctx, req.ReceiverID)
			if err != nil {
				logger.Error("Failed to load request receiver", "requestID", req.ID, "error", err)
				continue
			}
			sender, err := jr.store.Accounts.GetByID(ctx, req.SenderID)
			if err != nil {
				logger.Error("Failed to load request sender", "requestID", req.ID, "error", err)
				continue
			}

			if err := jr.services.Email.SendPendingRequestReminder(ctx, receiver.Email, receiver.Name, sender.Name, req.AmountCents); err != nil {
				logger.Error("Failed to send pending request reminder", "requestID", req.ID, "error", err)
				continue
			}
			reminded++
		}

		logger.Info("Pending request reminders sent", "stale", len(stale), "reminded", reminded)
	})
}

// AuditLedgerConsistency checks every account's balance against its initial
// balance plus its deposit, sent and received counters. Drift means a balance
// was mutated outside the ledger and needs operator attention.
func (jr *JobRunner) AuditLedgerConsistency() {
	jr.runWithRecovery("AuditLedgerConsistency", func() {
		ctx := context.Background()

		drifts, err := jr.store.Ledger.AuditDrift(ctx)
		if err != nil {
			logger.Error("Failed to audit ledger", "error", err)
			return
		}

		if len(drifts) == 0 {
			logger.Info("Ledger audit clean")
			return
		}

		for _, d := range drifts {
			logger.Error("Ledger drift detected", "accountID", d.AccountID, "driftCents", d.DriftCents)
		}
		logger.Error("Ledger audit found drifting accounts", "count", len(drifts))
	})
}
