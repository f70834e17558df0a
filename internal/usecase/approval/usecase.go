package approval

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainApproval "contract-manager-backend/internal/domain/approval"
	"contract-manager-backend/internal/domain/audit"
	domainContract "contract-manager-backend/internal/domain/contract"
	"contract-manager-backend/internal/domain/notification"
	"contract-manager-backend/internal/domain/uow"
	"contract-manager-backend/internal/domain/user"
	"contract-manager-backend/pkg/id"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Usecase is the approval engine. Every mutation of contracts.status runs
// inside a unit-of-work transaction that holds the contract row lock, so
// operations on one contract are serialized while different contracts
// proceed in parallel. Authorization comes in pre-resolved via user.Actor;
// the engine performs no role side-queries.
type Usecase struct {
	contracts domainContract.Repository
	approvals domainApproval.Repository
	uow       uow.UnitOfWork
	audit     audit.Recorder
	log       zerolog.Logger
}

func NewUsecase(contracts domainContract.Repository, approvals domainApproval.Repository, tx uow.UnitOfWork, rec audit.Recorder, log zerolog.Logger) *Usecase {
	return &Usecase{contracts: contracts, approvals: approvals, uow: tx, audit: rec, log: log}
}

// Request designates an approver for a contract. The approval insert, the
// contract status transition and the approver notification commit as one
// transaction; the audit entry is appended best-effort after commit.
func (u *Usecase) Request(ctx context.Context, actor user.Actor, in RequestInput) (*ApprovalDTO, error) {
	if in.Level < domainApproval.MinLevel || in.Level > domainApproval.MaxLevel {
		return nil, domainApproval.ErrInvalidLevel
	}

	var dto *ApprovalDTO
	var createdID uint64

	err := u.uow.WithinContractTx(ctx, in.ContractUID, func(r uow.Repos, c *domainContract.Contract) error {
		// Existence was checked by the row fetch; authorization collapses
		// into the same not-found so callers cannot probe for contracts
		// they cannot act on.
		if c.CreatedBy != actor.ID && !actor.Role.CanManageApprovals() {
			return domainContract.ErrNotFound
		}
		if !domainContract.CanRequestApproval(c.Status) {
			return domainContract.ErrInvalidState
		}

		approver, err := r.Users.GetByUserUID(ctx, in.ApproverUID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainApproval.ErrInvalidApprover
			}
			return err
		}
		if !approver.IsActive || !approver.Role.CanResolveApprovals() {
			return domainApproval.ErrInvalidApprover
		}

		exists, err := r.Approvals.ExistsForContractAndApprover(ctx, c.ID, approver.ID)
		if err != nil {
			return err
		}
		if exists {
			return domainApproval.ErrDuplicate
		}

		a := &domainApproval.Approval{
			ApprovalUID: id.NewID32(),
			ContractID:  c.ID,
			ApproverID:  approver.ID,
			Level:       in.Level,
			Status:      domainApproval.StatusPending,
			Comments:    in.Comments,
		}
		if err := r.Approvals.Create(ctx, a); err != nil {
			return err
		}

		if c.Status != domainContract.StatusPendingApproval {
			c.Status = domainContract.StatusPendingApproval
			c.StatusUpdateAt = time.Now().UTC()
			if err := r.Contracts.Save(ctx, c); err != nil {
				return err
			}
		}

		// Outbox row: committed with the transition, delivered async.
		n := &notification.Notification{
			UserID:       approver.ID,
			Title:        "New Approval Request",
			Message:      fmt.Sprintf("You have a new contract approval request for %q", c.Title),
			Category:     notification.CategoryApprovalRequest,
			RelatedTable: "contracts",
			RelatedID:    c.ID,
		}
		if err := r.Notifications.Create(ctx, n); err != nil {
			return err
		}

		createdID = a.ID
		dto = &ApprovalDTO{
			ApprovalUID: a.ApprovalUID,
			ContractUID: c.ContractUID,
			ApproverUID: approver.UserUID,
			Level:       a.Level,
			Status:      string(a.Status),
			Comments:    a.Comments,
			CreatedAt:   a.CreatedAt,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainContract.ErrNotFound
		}
		return nil, err
	}

	u.recordAudit(ctx, actor, "approvals", createdID, audit.ActionInsert)
	return dto, nil
}

// Resolve applies the designated approver's decision. Approved on the last
// pending row flips the contract to approved and notifies the creator
// exactly once; rejected cancels every sibling pending row and moves the
// contract to the terminal rejected status, all in one transaction.
func (u *Usecase) Resolve(ctx context.Context, actor user.Actor, in ResolveInput) error {
	if in.Decision != domainApproval.StatusApproved && in.Decision != domainApproval.StatusRejected {
		return domainApproval.ErrInvalidDecision
	}

	// Unlocked pre-read to learn which contract to serialize on. Everything
	// decision-relevant is re-read under the lock.
	peek, err := u.approvals.GetByApprovalUID(ctx, in.ApprovalUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainApproval.ErrNotFound
		}
		return err
	}
	owner, err := u.contracts.GetByID(ctx, peek.ContractID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainApproval.ErrNotFound
		}
		return err
	}

	var resolvedID uint64
	action := audit.ActionApproved
	if in.Decision == domainApproval.StatusRejected {
		action = audit.ActionRejected
	}

	err = u.uow.WithinContractTx(ctx, owner.ContractUID, func(r uow.Repos, c *domainContract.Contract) error {
		a, err := r.Approvals.GetByApprovalUID(ctx, in.ApprovalUID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainApproval.ErrNotFound
			}
			return err
		}
		if a.ApproverID != actor.ID {
			// Not this approver's request; indistinguishable from absent.
			return domainApproval.ErrNotFound
		}
		if a.Status != domainApproval.StatusPending {
			return domainApproval.ErrAlreadyResolved
		}
		if c.Status != domainContract.StatusPendingApproval {
			return domainContract.ErrInvalidState
		}

		now := time.Now().UTC()
		a.Status = in.Decision
		if in.Comments != "" {
			a.Comments = in.Comments
		}
		a.ResolvedAt = &now
		if err := r.Approvals.Save(ctx, a); err != nil {
			return err
		}

		switch in.Decision {
		case domainApproval.StatusApproved:
			pending, err := r.Approvals.CountPendingByContract(ctx, c.ID)
			if err != nil {
				return err
			}
			if pending > 0 {
				// Intermediate approval; creator hears nothing yet.
				break
			}
			c.Status = domainContract.StatusApproved
			c.StatusUpdateAt = now
			if err := r.Contracts.Save(ctx, c); err != nil {
				return err
			}
			if err := u.notifyCreator(ctx, r, c, true); err != nil {
				return err
			}

		case domainApproval.StatusRejected:
			// Void the siblings so no pending rows dangle on a dead chain.
			if _, err := r.Approvals.CancelPendingByContract(ctx, c.ID, now); err != nil {
				return err
			}
			c.Status = domainContract.StatusRejected
			c.StatusUpdateAt = now
			if err := r.Contracts.Save(ctx, c); err != nil {
				return err
			}
			if err := u.notifyCreator(ctx, r, c, false); err != nil {
				return err
			}
		}

		resolvedID = a.ID
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainApproval.ErrNotFound
		}
		return err
	}

	u.recordAudit(ctx, actor, "approvals", resolvedID, action)
	return nil
}

func (u *Usecase) notifyCreator(ctx context.Context, r uow.Repos, c *domainContract.Contract, approved bool) error {
	n := &notification.Notification{
		UserID:       c.CreatedBy,
		Category:     notification.CategoryContractUpdate,
		RelatedTable: "contracts",
		RelatedID:    c.ID,
	}
	if approved {
		n.Title = "Contract Approved"
		n.Message = fmt.Sprintf("Your contract %q has been approved", c.Title)
	} else {
		n.Title = "Contract Rejected"
		n.Message = fmt.Sprintf("Your contract %q has been rejected", c.Title)
	}
	return r.Notifications.Create(ctx, n)
}

// ListPending returns the actor's own queue, oldest request first.
func (u *Usecase) ListPending(ctx context.Context, actor user.Actor) ([]PendingDTO, error) {
	items, err := u.approvals.ListPendingForApprover(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	out := make([]PendingDTO, 0, len(items))
	for _, it := range items {
		out = append(out, PendingDTO{
			ApprovalUID:         it.ApprovalUID,
			ContractUID:         it.ContractUID,
			ContractNumber:      it.ContractNumber,
			ContractTitle:       it.ContractTitle,
			ContractDescription: it.ContractDescription,
			ContractValue:       it.ContractValue,
			StartDate:           it.StartDate,
			EndDate:             it.EndDate,
			CreatedByName:       it.CreatedByName,
			Level:               it.Level,
			Comments:            it.Comments,
			CreatedAt:           it.CreatedAt,
		})
	}
	return out, nil
}

// History returns the contract's full chain in canonical order
// (approval_level ASC, created_at ASC).
func (u *Usecase) History(ctx context.Context, actor user.Actor, contractUID string) ([]HistoryDTO, error) {
	c, err := u.contracts.GetByContractUID(ctx, contractUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainContract.ErrNotFound
		}
		return nil, err
	}
	items, err := u.approvals.ListByContract(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	out := make([]HistoryDTO, 0, len(items))
	for _, it := range items {
		out = append(out, HistoryDTO{
			ApprovalUID:   it.ApprovalUID,
			ApproverName:  it.ApproverName,
			ApproverEmail: it.ApproverEmail,
			Level:         it.Level,
			Status:        string(it.Status),
			Comments:      it.Comments,
			ResolvedAt:    it.ResolvedAt,
			CreatedAt:     it.CreatedAt,
		})
	}
	return out, nil
}

// List is the paginated admin/manager view across all contracts.
func (u *Usecase) List(ctx context.Context, actor user.Actor, in ListInput) (*ListResult, error) {
	f := domainApproval.ListFilter{
		Status: domainApproval.Status(in.Status),
		Page:   in.Page,
		Limit:  in.Limit,
	}
	if in.ContractUID != "" {
		c, err := u.contracts.GetByContractUID(ctx, in.ContractUID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domainContract.ErrNotFound
			}
			return nil, err
		}
		f.ContractID = c.ID
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}

	items, total, err := u.approvals.List(ctx, f)
	if err != nil {
		return nil, err
	}
	res := &ListResult{
		Data: make([]ListItemDTO, 0, len(items)),
		Pagination: Pagination{
			Page:  f.Page,
			Limit: f.Limit,
			Total: total,
			Pages: (total + int64(f.Limit) - 1) / int64(f.Limit),
		},
	}
	for _, it := range items {
		res.Data = append(res.Data, ListItemDTO{
			ApprovalUID:    it.ApprovalUID,
			ContractUID:    it.ContractUID,
			ContractNumber: it.ContractNumber,
			ContractTitle:  it.ContractTitle,
			ContractValue:  it.ContractValue,
			ApproverName:   it.ApproverName,
			ApproverEmail:  it.ApproverEmail,
			CreatedByName:  it.CreatedByName,
			Level:          it.Level,
			Status:         string(it.Status),
			Comments:       it.Comments,
			ResolvedAt:     it.ResolvedAt,
			CreatedAt:      it.CreatedAt,
		})
	}
	return res, nil
}

// recordAudit is best-effort: the business transition already committed, a
// failed audit write is logged and swallowed.
func (u *Usecase) recordAudit(ctx context.Context, actor user.Actor, table string, recordID uint64, action string) {
	if u.audit == nil {
		return
	}
	e := &audit.Entry{
		Table:     table,
		RecordID:  recordID,
		Action:    action,
		UserID:    actor.ID,
		IPAddress: actor.IP,
		UserAgent: actor.UserAgent,
	}
	if err := u.audit.Record(ctx, e); err != nil {
		u.log.Error().Err(err).
			Str("table", table).
			Uint64("record_id", recordID).
			Str("action", action).
			Msg("audit write failed")
	}
}
