package approval

import (
	"context"
	"errors"
	"testing"
	"time"

	domainApproval "contract-manager-backend/internal/domain/approval"
	domainAudit "contract-manager-backend/internal/domain/audit"
	domainContract "contract-manager-backend/internal/domain/contract"
	"contract-manager-backend/internal/domain/notification"
	"contract-manager-backend/internal/domain/uow"
	"contract-manager-backend/internal/domain/user"
	"contract-manager-backend/internal/testutil/approvalmock"
	"contract-manager-backend/internal/testutil/auditmock"
	"contract-manager-backend/internal/testutil/contractmock"
	"contract-manager-backend/internal/testutil/notificationmock"
	"contract-manager-backend/internal/testutil/uowmock"
	"contract-manager-backend/internal/testutil/usermock"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const (
	contractUID = "cccccccccccccccccccccccccccccccc"
	approverUID = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
)

var (
	creator  = user.Actor{ID: 10, UserUID: "11111111111111111111111111111111", Role: user.RoleUser}
	manager  = user.Actor{ID: 20, UserUID: "22222222222222222222222222222222", Role: user.RoleManager}
	stranger = user.Actor{ID: 30, UserUID: "33333333333333333333333333333333", Role: user.RoleUser}
	approver = user.Actor{ID: 40, UserUID: approverUID, Role: user.RoleApprover}
)

func draftContract() *domainContract.Contract {
	return &domainContract.Contract{
		ID:          77,
		ContractUID: contractUID,
		Title:       "Road resurfacing",
		Status:      domainContract.StatusDraft,
		CreatedBy:   creator.ID,
	}
}

func activeApproverRow() *user.User {
	return &user.User{ID: approver.ID, UserUID: approverUID, FullName: "Ann Approver", Role: user.RoleApprover, IsActive: true}
}

// lockTx wires a uowmock that hands fn the given contract and repos,
// mimicking the locked-row transaction.
func lockTx(c *domainContract.Contract, r uow.Repos) *uowmock.UoW {
	return &uowmock.UoW{
		WithinContractTxFn: func(ctx context.Context, uid string, fn func(uow.Repos, *domainContract.Contract) error) error {
			if c == nil {
				return gorm.ErrRecordNotFound
			}
			return fn(r, c)
		},
	}
}

func TestUsecase_Request(t *testing.T) {
	in := RequestInput{ContractUID: contractUID, ApproverUID: approverUID, Level: 1, Comments: "please review"}

	tests := []struct {
		name    string
		actor   user.Actor
		in      RequestInput
		setup   func(t *testing.T) *Usecase
		wantErr error
		check   func(t *testing.T, dto *ApprovalDTO)
	}{
		{
			name:  "creator requests on draft: pending row, status flips, approver notified",
			actor: creator,
			in:    in,
			setup: func(t *testing.T) *Usecase {
				c := draftContract()
				contracts := &contractmock.Repo{
					SaveFn: func(ctx context.Context, got *domainContract.Contract) error {
						if got.Status != domainContract.StatusPendingApproval {
							t.Fatalf("contract status = %s, want pending_approval", got.Status)
						}
						return nil
					},
				}
				approvals := &approvalmock.Repo{
					CreateFn: func(ctx context.Context, a *domainApproval.Approval) error {
						if a.ContractID != 77 || a.ApproverID != approver.ID || a.Status != domainApproval.StatusPending {
							t.Fatalf("approval row mismatch: %+v", a)
						}
						return nil
					},
				}
				users := &usermock.Repo{
					GetByUserUIDFn: func(ctx context.Context, uid string) (*user.User, error) {
						return activeApproverRow(), nil
					},
				}
				notifs := &notificationmock.Repo{
					CreateFn: func(ctx context.Context, n *notification.Notification) error {
						if n.UserID != approver.ID || n.Category != notification.CategoryApprovalRequest {
							t.Fatalf("notification mismatch: %+v", n)
						}
						return nil
					},
				}
				tx := lockTx(c, uow.Repos{Contracts: contracts, Approvals: approvals, Users: users, Notifications: notifs})
				return NewUsecase(contracts, approvals, tx, &auditmock.Recorder{}, zerolog.Nop())
			},
			check: func(t *testing.T, dto *ApprovalDTO) {
				if dto.ContractUID != contractUID || dto.ApproverUID != approverUID || dto.Status != "pending" {
					t.Fatalf("dto mismatch: %+v", dto)
				}
			},
		},
		{
			name:  "queueing a second approver leaves pending_approval untouched",
			actor: manager,
			in:    in,
			setup: func(t *testing.T) *Usecase {
				c := draftContract()
				c.Status = domainContract.StatusPendingApproval
				contracts := &contractmock.Repo{
					SaveFn: func(ctx context.Context, got *domainContract.Contract) error {
						t.Fatalf("contract must not be re-saved when already pending_approval")
						return nil
					},
				}
				approvals := &approvalmock.Repo{}
				users := &usermock.Repo{
					GetByUserUIDFn: func(ctx context.Context, uid string) (*user.User, error) {
						return activeApproverRow(), nil
					},
				}
				tx := lockTx(c, uow.Repos{Contracts: contracts, Approvals: approvals, Users: users, Notifications: &notificationmock.Repo{}})
				return NewUsecase(contracts, approvals, tx, &auditmock.Recorder{}, zerolog.Nop())
			},
		},
		{
			name:    "contract missing reads as not found",
			actor:   creator,
			in:      in,
			wantErr: domainContract.ErrNotFound,
			setup: func(t *testing.T) *Usecase {
				contracts := &contractmock.Repo{}
				approvals := &approvalmock.Repo{}
				tx := lockTx(nil, uow.Repos{})
				return NewUsecase(contracts, approvals, tx, &auditmock.Recorder{}, zerolog.Nop())
			},
		},
		{
			name:    "non-creator without manager role reads as not found",
			actor:   stranger,
			in:      in,
			wantErr: domainContract.ErrNotFound,
			setup: func(t *testing.T) *Usecase {
				c := draftContract()
				contracts := &contractmock.Repo{}
				approvals := &approvalmock.Repo{}
				tx := lockTx(c, uow.Repos{Contracts: contracts, Approvals: approvals})
				return NewUsecase(contracts, approvals, tx, &auditmock.Recorder{}, zerolog.Nop())
			},
		},
		{
			name:    "approved contract cannot re-enter the chain",
			actor:   creator,
			in:      in,
			wantErr: domainContract.ErrInvalidState,
			setup: func(t *testing.T) *Usecase {
				c := draftContract()
				c.Status = domainContract.StatusApproved
				contracts := &contractmock.Repo{}
				approvals := &approvalmock.Repo{}
				tx := lockTx(c, uow.Repos{Contracts: contracts, Approvals: approvals})
				return NewUsecase(contracts, approvals, tx, &auditmock.Recorder{}, zerolog.Nop())
			},
		},
		{
			name:    "inactive approver rejected",
			actor:   creator,
			in:      in,
			wantErr: domainApproval.ErrInvalidApprover,
			setup: func(t *testing.T) *Usecase {
				c := draftContract()
				users := &usermock.Repo{
					GetByUserUIDFn: func(ctx context.Context, uid string) (*user.User, error) {
						u := activeApproverRow()
						u.IsActive = false
						return u, nil
					},
				}
				contracts := &contractmock.Repo{}
				approvals := &approvalmock.Repo{}
				tx := lockTx(c, uow.Repos{Contracts: contracts, Approvals: approvals, Users: users})
				return NewUsecase(contracts, approvals, tx, &auditmock.Recorder{}, zerolog.Nop())
			},
		},
		{
			name:    "plain-user approver rejected",
			actor:   creator,
			in:      in,
			wantErr: domainApproval.ErrInvalidApprover,
			setup: func(t *testing.T) *Usecase {
				c := draftContract()
				users := &usermock.Repo{
					GetByUserUIDFn: func(ctx context.Context, uid string) (*user.User, error) {
						u := activeApproverRow()
						u.Role = user.RoleUser
						return u, nil
					},
				}
				contracts := &contractmock.Repo{}
				approvals := &approvalmock.Repo{}
				tx := lockTx(c, uow.Repos{Contracts: contracts, Approvals: approvals, Users: users})
				return NewUsecase(contracts, approvals, tx, &auditmock.Recorder{}, zerolog.Nop())
			},
		},
		{
			name:    "duplicate (contract, approver) pair rejected",
			actor:   creator,
			in:      in,
			wantErr: domainApproval.ErrDuplicate,
			setup: func(t *testing.T) *Usecase {
				c := draftContract()
				users := &usermock.Repo{
					GetByUserUIDFn: func(ctx context.Context, uid string) (*user.User, error) {
						return activeApproverRow(), nil
					},
				}
				approvals := &approvalmock.Repo{
					ExistsForContractAndApproverFn: func(ctx context.Context, contractID, approverID uint64) (bool, error) {
						return true, nil
					},
				}
				contracts := &contractmock.Repo{}
				tx := lockTx(c, uow.Repos{Contracts: contracts, Approvals: approvals, Users: users})
				return NewUsecase(contracts, approvals, tx, &auditmock.Recorder{}, zerolog.Nop())
			},
		},
		{
			name:    "level out of range rejected without touching the store",
			actor:   creator,
			in:      RequestInput{ContractUID: contractUID, ApproverUID: approverUID, Level: 11},
			wantErr: domainApproval.ErrInvalidLevel,
			setup: func(t *testing.T) *Usecase {
				tx := &uowmock.UoW{
					WithinContractTxFn: func(ctx context.Context, uid string, fn func(uow.Repos, *domainContract.Contract) error) error {
						t.Fatalf("no transaction expected for invalid level")
						return nil
					},
				}
				return NewUsecase(&contractmock.Repo{}, &approvalmock.Repo{}, tx, &auditmock.Recorder{}, zerolog.Nop())
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u := tc.setup(t)
			dto, err := u.Request(context.Background(), tc.actor, tc.in)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("err = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if tc.check != nil {
				tc.check(t, dto)
			}
		})
	}
}

// resolveFixture builds the two-phase stores Resolve touches: the unlocked
// pre-read plus the in-tx state.
type resolveFixture struct {
	contract *domainContract.Contract
	approval *domainApproval.Approval

	savedApproval *domainApproval.Approval
	savedContract *domainContract.Contract
	cancelled     int64
	notifications []notification.Notification
	pendingLeft   int64
}

func (f *resolveFixture) usecase(t *testing.T) *Usecase {
	contracts := &contractmock.Repo{
		GetByIDFn: func(ctx context.Context, id uint64) (*domainContract.Contract, error) {
			if f.contract == nil || f.contract.ID != id {
				return nil, gorm.ErrRecordNotFound
			}
			return f.contract, nil
		},
		SaveFn: func(ctx context.Context, c *domainContract.Contract) error {
			f.savedContract = c
			return nil
		},
	}
	approvals := &approvalmock.Repo{
		GetByApprovalUIDFn: func(ctx context.Context, uid string) (*domainApproval.Approval, error) {
			if f.approval == nil || f.approval.ApprovalUID != uid {
				return nil, gorm.ErrRecordNotFound
			}
			return f.approval, nil
		},
		SaveFn: func(ctx context.Context, a *domainApproval.Approval) error {
			f.savedApproval = a
			return nil
		},
		CountPendingByContractFn: func(ctx context.Context, contractID uint64) (int64, error) {
			return f.pendingLeft, nil
		},
		CancelPendingByContractFn: func(ctx context.Context, contractID uint64, at time.Time) (int64, error) {
			f.cancelled = f.pendingLeft
			return f.pendingLeft, nil
		},
	}
	notifs := &notificationmock.Repo{
		CreateFn: func(ctx context.Context, n *notification.Notification) error {
			f.notifications = append(f.notifications, *n)
			return nil
		},
	}
	tx := &uowmock.UoW{
		WithinContractTxFn: func(ctx context.Context, uid string, fn func(uow.Repos, *domainContract.Contract) error) error {
			if f.contract == nil || f.contract.ContractUID != uid {
				return gorm.ErrRecordNotFound
			}
			return fn(uow.Repos{Contracts: contracts, Approvals: approvals, Notifications: notifs}, f.contract)
		},
	}
	return NewUsecase(contracts, approvals, tx, &auditmock.Recorder{}, zerolog.Nop())
}

func pendingFixture(pendingLeft int64) *resolveFixture {
	c := draftContract()
	c.Status = domainContract.StatusPendingApproval
	return &resolveFixture{
		contract: c,
		approval: &domainApproval.Approval{
			ID:          501,
			ApprovalUID: "ffffffffffffffffffffffffffffffff",
			ContractID:  c.ID,
			ApproverID:  approver.ID,
			Level:       1,
			Status:      domainApproval.StatusPending,
		},
		pendingLeft: pendingLeft,
	}
}

func TestUsecase_Resolve_ApprovedIntermediate(t *testing.T) {
	f := pendingFixture(1) // one sibling still pending after this one
	u := f.usecase(t)

	err := u.Resolve(context.Background(), approver, ResolveInput{
		ApprovalUID: f.approval.ApprovalUID,
		Decision:    domainApproval.StatusApproved,
	})
	if err != nil {
		t.Fatalf("Resolve err: %v", err)
	}
	if f.savedApproval == nil || f.savedApproval.Status != domainApproval.StatusApproved {
		t.Fatalf("approval not saved as approved: %+v", f.savedApproval)
	}
	if f.savedApproval.ResolvedAt == nil {
		t.Fatalf("resolved_at not stamped")
	}
	if f.savedContract != nil {
		t.Fatalf("contract must not change while siblings are pending")
	}
	if len(f.notifications) != 0 {
		t.Fatalf("creator must not hear about intermediate approvals, got %d", len(f.notifications))
	}
}

func TestUsecase_Resolve_ApprovedLast(t *testing.T) {
	f := pendingFixture(0) // this was the last pending row
	u := f.usecase(t)

	err := u.Resolve(context.Background(), approver, ResolveInput{
		ApprovalUID: f.approval.ApprovalUID,
		Decision:    domainApproval.StatusApproved,
	})
	if err != nil {
		t.Fatalf("Resolve err: %v", err)
	}
	if f.savedContract == nil || f.savedContract.Status != domainContract.StatusApproved {
		t.Fatalf("contract not flipped to approved: %+v", f.savedContract)
	}
	if len(f.notifications) != 1 {
		t.Fatalf("want exactly one creator notification, got %d", len(f.notifications))
	}
	n := f.notifications[0]
	if n.UserID != creator.ID || n.Title != "Contract Approved" {
		t.Fatalf("creator notification mismatch: %+v", n)
	}
}

func TestUsecase_Resolve_RejectedCancelsSiblings(t *testing.T) {
	f := pendingFixture(2) // two siblings pending
	u := f.usecase(t)

	err := u.Resolve(context.Background(), approver, ResolveInput{
		ApprovalUID: f.approval.ApprovalUID,
		Decision:    domainApproval.StatusRejected,
		Comments:    "budget exceeded",
	})
	if err != nil {
		t.Fatalf("Resolve err: %v", err)
	}
	if f.savedApproval == nil || f.savedApproval.Status != domainApproval.StatusRejected {
		t.Fatalf("approval not saved as rejected: %+v", f.savedApproval)
	}
	if f.savedApproval.Comments != "budget exceeded" {
		t.Fatalf("comments not recorded: %q", f.savedApproval.Comments)
	}
	if f.cancelled != 2 {
		t.Fatalf("siblings not cancelled, cancelled=%d", f.cancelled)
	}
	if f.savedContract == nil || f.savedContract.Status != domainContract.StatusRejected {
		t.Fatalf("contract not moved to rejected: %+v", f.savedContract)
	}
	if len(f.notifications) != 1 || f.notifications[0].Title != "Contract Rejected" {
		t.Fatalf("creator rejection notification mismatch: %+v", f.notifications)
	}
}

func TestUsecase_Resolve_AlreadyResolved(t *testing.T) {
	f := pendingFixture(0)
	f.approval.Status = domainApproval.StatusApproved
	u := f.usecase(t)

	err := u.Resolve(context.Background(), approver, ResolveInput{
		ApprovalUID: f.approval.ApprovalUID,
		Decision:    domainApproval.StatusApproved,
	})
	if !errors.Is(err, domainApproval.ErrAlreadyResolved) {
		t.Fatalf("err = %v, want ErrAlreadyResolved", err)
	}
	if f.savedApproval != nil || f.savedContract != nil || len(f.notifications) != 0 {
		t.Fatalf("no side effects expected on second resolution")
	}
}

func TestUsecase_Resolve_WrongApproverReadsAsNotFound(t *testing.T) {
	f := pendingFixture(0)
	u := f.usecase(t)

	err := u.Resolve(context.Background(), stranger, ResolveInput{
		ApprovalUID: f.approval.ApprovalUID,
		Decision:    domainApproval.StatusApproved,
	})
	if !errors.Is(err, domainApproval.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUsecase_Resolve_InvalidDecision(t *testing.T) {
	f := pendingFixture(0)
	u := f.usecase(t)

	err := u.Resolve(context.Background(), approver, ResolveInput{
		ApprovalUID: f.approval.ApprovalUID,
		Decision:    domainApproval.StatusCancelled,
	})
	if !errors.Is(err, domainApproval.ErrInvalidDecision) {
		t.Fatalf("err = %v, want ErrInvalidDecision", err)
	}
}

func TestUsecase_Resolve_MissingApproval(t *testing.T) {
	f := pendingFixture(0)
	u := f.usecase(t)

	err := u.Resolve(context.Background(), approver, ResolveInput{
		ApprovalUID: "0000000000000000000000000000dead",
		Decision:    domainApproval.StatusApproved,
	})
	if !errors.Is(err, domainApproval.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUsecase_Resolve_StaleContractState(t *testing.T) {
	// Pending approval row but the contract already left pending_approval:
	// the resolution must not silently re-promote the contract.
	f := pendingFixture(0)
	f.contract.Status = domainContract.StatusRejected
	u := f.usecase(t)

	err := u.Resolve(context.Background(), approver, ResolveInput{
		ApprovalUID: f.approval.ApprovalUID,
		Decision:    domainApproval.StatusApproved,
	})
	if !errors.Is(err, domainContract.ErrInvalidState) {
		t.Fatalf("err = %v, want contract.ErrInvalidState", err)
	}
	if f.savedContract != nil {
		t.Fatalf("contract must stay untouched")
	}
}

func TestUsecase_AuditFailureIsSwallowed(t *testing.T) {
	f := pendingFixture(0)
	u := f.usecase(t)
	// Swap in a failing recorder; the committed transition must still report success.
	u.audit = &auditmock.Recorder{
		RecordFn: func(ctx context.Context, e *domainAudit.Entry) error {
			return errors.New("audit sink down")
		},
	}

	err := u.Resolve(context.Background(), approver, ResolveInput{
		ApprovalUID: f.approval.ApprovalUID,
		Decision:    domainApproval.StatusApproved,
	})
	if err != nil {
		t.Fatalf("audit failure must not surface, got %v", err)
	}
	if f.savedContract == nil || f.savedContract.Status != domainContract.StatusApproved {
		t.Fatalf("transition must still apply: %+v", f.savedContract)
	}
}

func TestUsecase_ListPending_MapsRows(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	approvals := &approvalmock.Repo{
		ListPendingForApproverFn: func(ctx context.Context, approverID uint64) ([]domainApproval.PendingItem, error) {
			if approverID != approver.ID {
				t.Fatalf("queried wrong approver: %d", approverID)
			}
			return []domainApproval.PendingItem{{
				Approval: domainApproval.Approval{
					ApprovalUID: "ffffffffffffffffffffffffffffffff",
					Level:       2,
					Status:      domainApproval.StatusPending,
					CreatedAt:   now,
				},
				ContractUID:    contractUID,
				ContractNumber: "CTR-2026-001",
				ContractTitle:  "Road resurfacing",
				ContractValue:  125000,
				CreatedByName:  "Carl Creator",
			}}, nil
		},
	}
	u := NewUsecase(&contractmock.Repo{}, approvals, uowmock.New(), &auditmock.Recorder{}, zerolog.Nop())

	items, err := u.ListPending(context.Background(), approver)
	if err != nil {
		t.Fatalf("ListPending err: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("want 1 item, got %d", len(items))
	}
	it := items[0]
	if it.ContractNumber != "CTR-2026-001" || it.Level != 2 || !it.CreatedAt.Equal(now) {
		t.Fatalf("pending item mismatch: %+v", it)
	}
}

func TestUsecase_History_UnknownContract(t *testing.T) {
	contracts := &contractmock.Repo{
		GetByContractUIDFn: func(ctx context.Context, uid string) (*domainContract.Contract, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	u := NewUsecase(contracts, &approvalmock.Repo{}, uowmock.New(), &auditmock.Recorder{}, zerolog.Nop())

	_, err := u.History(context.Background(), creator, contractUID)
	if !errors.Is(err, domainContract.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUsecase_List_PaginationMath(t *testing.T) {
	approvals := &approvalmock.Repo{
		ListFn: func(ctx context.Context, f domainApproval.ListFilter) ([]domainApproval.ListItem, int64, error) {
			if f.Page != 1 || f.Limit != 10 {
				t.Fatalf("defaults not applied: %+v", f)
			}
			return []domainApproval.ListItem{}, 25, nil
		},
	}
	u := NewUsecase(&contractmock.Repo{}, approvals, uowmock.New(), &auditmock.Recorder{}, zerolog.Nop())

	res, err := u.List(context.Background(), manager, ListInput{})
	if err != nil {
		t.Fatalf("List err: %v", err)
	}
	if res.Pagination.Total != 25 || res.Pagination.Pages != 3 {
		t.Fatalf("pagination mismatch: %+v", res.Pagination)
	}
}
