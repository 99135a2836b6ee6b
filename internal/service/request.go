package service

import (
	"context"

	"swiftpay-backend/internal/domain"
	"swiftpay-backend/internal/logger"
	"swiftpay-backend/internal/repository"
)

type requestService struct {
	requestRepo    repository.RequestRepository
	ledgerRepo     repository.LedgerRepository
	accountRepo    repository.AccountRepository
	emailSvc       EmailService
	allowOverdraft bool
}

func NewRequestService(
	requestRepo repository.RequestRepository,
	ledgerRepo repository.LedgerRepository,
	accountRepo repository.AccountRepository,
	emailSvc EmailService,
	allowOverdraft bool,
) RequestService {
	return &requestService{
		requestRepo:    requestRepo,
		ledgerRepo:     ledgerRepo,
		accountRepo:    accountRepo,
		emailSvc:       emailSvc,
		allowOverdraft: allowOverdraft,
	}
}

// CreateRequest records a pending offer of money from senderID to receiverID.
// The sender is debited once the receiver accepts.
func (s *requestService) CreateRequest(ctx context.Context, senderID, receiverID, amountCents int64, description string) (*domain.MoneyRequest, error) {
	logger.EnterMethod("requestService.CreateRequest",
		"senderID", senderID, "receiverID", receiverID, "amountCents", amountCents)

	if receiverID == 0 {
		return nil, &domain.ErrValidation{Field: "receiver", Message: "required"}
	}
	if description == "" {
		return nil, &domain.ErrValidation{Field: "description", Message: "required"}
	}
	if amountCents <= 0 {
		return nil, &domain.ErrInvalidAmount{AmountCents: amountCents}
	}
	if senderID == receiverID {
		return nil, &domain.ErrSelfTransfer{AccountID: senderID}
	}

	req := &domain.MoneyRequest{
		SenderID:    senderID,
		ReceiverID:  receiverID,
		AmountCents: amountCents,
		Description: description,
		Status:      domain.RequestStatusPending,
	}

	if err := s.requestRepo.Create(ctx, req); err != nil {
		logger.ExitMethodWithError("requestService.CreateRequest", err, "senderID", senderID)
		return nil, err
	}

	s.notifyRequestReceived(ctx, req)

	logger.ExitMethod("requestService.CreateRequest", "requestID", req.ID)
	return req, nil
}

func (s *requestService) notifyRequestReceived(ctx context.Context, req *domain.MoneyRequest) {
	receiver, err := s.accountRepo.GetByID(ctx, req.ReceiverID)
	if err != nil {
		return
	}
	sender, err := s.accountRepo.GetByID(ctx, req.SenderID)
	if err != nil {
		return
	}
	_ = s.emailSvc.SendRequestReceivedNotification(ctx, receiver.Email, receiver.Name, sender.Name, req.AmountCents, req.Description)
}

// UpdateStatus transitions a pending request. Only the request's receiver (the
// account being asked to pay) may resolve it. Accepting runs the settlement
// transfer and the status flip in one database transaction.
func (s *requestService) UpdateStatus(ctx context.Context, p StatusUpdateInput) (*domain.Transaction, *domain.MoneyRequest, error) {
	logger.EnterMethod("requestService.UpdateStatus",
		"requestID", p.RequestID, "status", p.Status, "callerID", p.CallerID)

	if p.Status != domain.RequestStatusAccepted && p.Status != domain.RequestStatusRejected {
		return nil, nil, &domain.ErrValidation{Field: "status", Message: "must be accepted or rejected"}
	}

	req, err := s.requestRepo.GetByID(ctx, p.RequestID)
	if err != nil {
		logger.ExitMethodWithError("requestService.UpdateStatus", err, "requestID", p.RequestID)
		return nil, nil, err
	}
	if req.ReceiverID != p.CallerID {
		err := &domain.ErrUnauthorized{Message: "only the requested account can resolve this request"}
		logger.ExitMethodWithError("requestService.UpdateStatus", err, "requestID", p.RequestID)
		return nil, nil, err
	}

	var txn *domain.Transaction
	if p.Status == domain.RequestStatusAccepted {
		txnType := p.Type
		if txnType == "" {
			txnType = domain.TransactionTypeRequestSettlement
		}
		reference := p.Reference
		if reference == "" {
			reference = req.Description
		}
		txn, err = s.ledgerRepo.SettleRequest(ctx, repository.SettleParams{
			RequestID:      p.RequestID,
			Type:           txnType,
			Reference:      reference,
			IdempotencyKey: p.IdempotencyKey,
			AllowOverdraft: s.allowOverdraft,
		})
		if err == nil {
			req.Status = domain.RequestStatusAccepted
		}
	} else {
		req, err = s.ledgerRepo.UpdateRequestStatus(ctx, p.RequestID, p.Status)
	}
	if err != nil {
		logger.ExitMethodWithError("requestService.UpdateStatus", err, "requestID", p.RequestID)
		return nil, nil, err
	}

	s.notifyRequestResolved(ctx, req)

	logger.ExitMethod("requestService.UpdateStatus", "requestID", p.RequestID, "status", req.Status)
	return txn, req, nil
}

func (s *requestService) notifyRequestResolved(ctx context.Context, req *domain.MoneyRequest) {
	sender, err := s.accountRepo.GetByID(ctx, req.SenderID)
	if err != nil {
		return
	}
	_ = s.emailSvc.SendRequestResolvedNotification(ctx, sender.Email, sender.Name, req.AmountCents, req.Status)
}

func (s *requestService) ListRequests(ctx context.Context, accountID int64, direction domain.ListDirection) ([]domain.MoneyRequest, error) {
	return s.requestRepo.List(ctx, accountID, direction)
}
