package contract

import (
	"context"
	"errors"

	"contract-manager-backend/internal/domain/audit"
	domainContract "contract-manager-backend/internal/domain/contract"
	"contract-manager-backend/internal/domain/uow"
	"contract-manager-backend/internal/domain/user"
	"contract-manager-backend/pkg/id"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type Usecase struct {
	repo  domainContract.Repository
	uow   uow.UnitOfWork
	audit audit.Recorder
	log   zerolog.Logger
}

func NewUsecase(repo domainContract.Repository, tx uow.UnitOfWork, rec audit.Recorder, log zerolog.Logger) *Usecase {
	return &Usecase{repo: repo, uow: tx, audit: rec, log: log}
}

// Create registers a new contract in draft. The approval engine owns every
// later status change.
func (u *Usecase) Create(ctx context.Context, actor user.Actor, in CreateInput) (*ContractDTO, error) {
	// Unique contract number check; the DB unique index backs this up.
	_, err := u.repo.GetByNumber(ctx, in.ContractNumber)
	switch {
	case err == nil:
		return nil, domainContract.ErrDuplicateNumber
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	c := &domainContract.Contract{
		ContractUID:    id.NewID32(),
		ContractNumber: in.ContractNumber,
		Title:          in.Title,
		Description:    in.Description,
		Value:          in.Value,
		Category:       in.Category,
		Specification:  in.Specification,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		Status:         domainContract.StatusDraft,
		CreatedBy:      actor.ID,
	}
	if err := u.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	u.recordAudit(ctx, actor, c.ID, audit.ActionInsert)
	return toDTO(c), nil
}

func (u *Usecase) Get(ctx context.Context, actor user.Actor, contractUID string) (*ContractDTO, error) {
	c, err := u.repo.GetByContractUID(ctx, contractUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainContract.ErrNotFound
		}
		return nil, err
	}
	return toDTO(c), nil
}

// Delete hard-deletes a contract and cascades over its approvals in one
// transaction. Admin/manager may delete any contract; the creator may only
// delete their own draft. Anything else reads as not found.
func (u *Usecase) Delete(ctx context.Context, actor user.Actor, contractUID string) error {
	var deletedID uint64

	err := u.uow.WithinContractTx(ctx, contractUID, func(r uow.Repos, c *domainContract.Contract) error {
		switch {
		case actor.Role.CanManageApprovals():
			// may delete regardless of status
		case c.CreatedBy == actor.ID:
			if c.Status != domainContract.StatusDraft {
				return domainContract.ErrDeleteRestricted
			}
		default:
			return domainContract.ErrNotFound
		}

		if err := r.Approvals.DeleteByContract(ctx, c.ID); err != nil {
			return err
		}
		if err := r.Contracts.Delete(ctx, c); err != nil {
			return err
		}
		deletedID = c.ID
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainContract.ErrNotFound
		}
		return err
	}

	u.recordAudit(ctx, actor, deletedID, audit.ActionDelete)
	return nil
}

func (u *Usecase) recordAudit(ctx context.Context, actor user.Actor, recordID uint64, action string) {
	if u.audit == nil {
		return
	}
	e := &audit.Entry{
		Table:     "contracts",
		RecordID:  recordID,
		Action:    action,
		UserID:    actor.ID,
		IPAddress: actor.IP,
		UserAgent: actor.UserAgent,
	}
	if err := u.audit.Record(ctx, e); err != nil {
		u.log.Error().Err(err).
			Uint64("record_id", recordID).
			Str("action", action).
			Msg("audit write failed")
	}
}

func toDTO(c *domainContract.Contract) *ContractDTO {
	return &ContractDTO{
		ContractUID:    c.ContractUID,
		ContractNumber: c.ContractNumber,
		Title:          c.Title,
		Description:    c.Description,
		Value:          c.Value,
		Category:       c.Category,
		Specification:  c.Specification,
		StartDate:      c.StartDate,
		EndDate:        c.EndDate,
		Status:         string(c.Status),
		CreatedAt:      c.CreatedAt,
	}
}
