package calendar

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/clinic-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-portal/internal/dto"
)

const (
	MsgFetchFailed  = "Error fetching appointments"
	MsgCreateFailed = "Error creating appointment"
	MsgCancelFailed = "Error canceling appointment"
	MsgNotFound     = "Appointment not found"
)

var (
	// ErrBusy rejects a confirm while the same dialog is still submitting.
	ErrBusy = errors.New("calendar: request already in progress")
	// ErrStale reports a response whose dialog was closed or reopened
	// before it arrived; its result was discarded.
	ErrStale = errors.New("calendar: dialog closed before the response arrived")
	// ErrNoDialog rejects a confirm with no open dialog.
	ErrNoDialog = errors.New("calendar: no dialog is open")
)

// API is the appointment surface the view-model synchronizes with.
type API interface {
	ListAppointments(ctx context.Context) ([]dto.Appointment, error)
	CreateAppointment(ctx context.Context, title string, start, end time.Time, key string) (dto.Appointment, error)
	DeleteAppointment(ctx context.Context, id uint) error
}

type Phase int

const (
	Idle Phase = iota
	SlotChosen
	EventChosen
	Submitting
)

func (p Phase) String() string {
	switch p {
	case SlotChosen:
		return "slot_chosen"
	case EventChosen:
		return "event_chosen"
	case Submitting:
		return "submitting"
	default:
		return "idle"
	}
}

type CreateDialog struct {
	Phase Phase
	Slot  Slot
}

type CancelDialog struct {
	Phase       Phase
	Appointment dto.Appointment
}

// State is a copy of everything the UI draws.
type State struct {
	Appointments []dto.Appointment
	ErrorMessage string
	Create       CreateDialog
	Cancel       CancelDialog
}

type createDialog struct {
	CreateDialog
	gen uint64
	key string
}

type cancelDialog struct {
	CancelDialog
	gen uint64
}

// ViewModel holds the client copy of the appointment table. The mutex is
// never held across a call to the API.
type ViewModel struct {
	api API

	mu           sync.Mutex
	appointments []dto.Appointment
	errorMessage string
	create       createDialog
	cancel       cancelDialog
	gen          uint64
	mountGen     uint64
	writes       uint64

	newKey func() string
}

func NewViewModel(api API) *ViewModel {
	return &ViewModel{
		api:          api,
		appointments: []dto.Appointment{},
		newKey:       uuid.NewString,
	}
}

func (vm *ViewModel) nextGen() uint64 {
	vm.gen++
	return vm.gen
}

// Mount replaces the list with the server's. A failure sets the error
// banner and keeps the last list that loaded. A response that overlapped
// a newer Mount or a confirmed create or cancel is dropped with ErrStale,
// since its snapshot may predate that change.
func (vm *ViewModel) Mount(ctx context.Context) error {
	vm.mu.Lock()
	vm.mountGen++
	gen, writes := vm.mountGen, vm.writes
	vm.mu.Unlock()

	list, err := vm.api.ListAppointments(ctx)

	vm.mu.Lock()
	defer vm.mu.Unlock()

	if gen != vm.mountGen || writes != vm.writes {
		return ErrStale
	}
	if err != nil {
		vm.errorMessage = MsgFetchFailed
		return err
	}
	vm.appointments = append([]dto.Appointment{}, list...)
	return nil
}

func (vm *ViewModel) State() State {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	return State{
		Appointments: append([]dto.Appointment{}, vm.appointments...),
		ErrorMessage: vm.errorMessage,
		Create:       vm.create.CreateDialog,
		Cancel:       vm.cancel.CancelDialog,
	}
}

func (vm *ViewModel) Appointments() []dto.Appointment {
	return vm.State().Appointments
}

func (vm *ViewModel) ErrorMessage() string {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.errorMessage
}

func (vm *ViewModel) DismissError() {
	vm.mu.Lock()
	vm.errorMessage = ""
	vm.mu.Unlock()
}

// ======================================================
// CREATION
// ======================================================

// SelectSlot opens the creation dialog for s. The list is not touched.
// Choosing another slot while a submission is in flight is rejected.
func (vm *ViewModel) SelectSlot(s Slot) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.create.Phase == Submitting {
		return ErrBusy
	}
	vm.create = createDialog{
		CreateDialog: CreateDialog{Phase: SlotChosen, Slot: s},
		gen:          vm.nextGen(),
		key:          vm.newKey(),
	}
	return nil
}

// ConfirmCreate submits the open creation dialog. An empty title fails
// locally. On failure the dialog stays open for a retry, reusing the same
// idempotency key.
func (vm *ViewModel) ConfirmCreate(ctx context.Context, title string) (dto.Appointment, error) {
	title = strings.TrimSpace(title)

	vm.mu.Lock()
	switch vm.create.Phase {
	case Idle:
		vm.mu.Unlock()
		return dto.Appointment{}, ErrNoDialog
	case Submitting:
		vm.mu.Unlock()
		return dto.Appointment{}, ErrBusy
	}
	if title == "" {
		vm.errorMessage = domain.MsgTitleRequired
		vm.mu.Unlock()
		return dto.Appointment{}, &domain.ValidationError{Field: "title", Message: domain.MsgTitleRequired}
	}

	vm.create.Phase = Submitting
	gen, slot, key := vm.create.gen, vm.create.Slot, vm.create.key
	vm.mu.Unlock()

	ap, err := vm.api.CreateAppointment(ctx, title, slot.Start, slot.End, key)

	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.create.gen != gen || vm.create.Phase != Submitting {
		return dto.Appointment{}, ErrStale
	}
	if err != nil {
		vm.create.Phase = SlotChosen
		var ve *domain.ValidationError
		if errors.As(err, &ve) && ve.Message != "" {
			vm.errorMessage = ve.Message
		} else {
			vm.errorMessage = MsgCreateFailed
		}
		return dto.Appointment{}, err
	}

	vm.appointments = append(vm.appointments, ap)
	vm.writes++
	vm.create = createDialog{}
	vm.errorMessage = ""
	return ap, nil
}

// CloseCreate dismisses the creation dialog. A submission still in flight
// is discarded when it returns.
func (vm *ViewModel) CloseCreate() {
	vm.mu.Lock()
	vm.create = createDialog{gen: vm.nextGen()}
	vm.mu.Unlock()
}

// ======================================================
// CANCELLATION
// ======================================================

// SelectEvent opens the cancellation dialog bound to the appointment with
// id, not to its position in the list.
func (vm *ViewModel) SelectEvent(id uint) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.cancel.Phase == Submitting {
		return ErrBusy
	}

	for _, ap := range vm.appointments {
		if ap.ID == id {
			vm.cancel = cancelDialog{
				CancelDialog: CancelDialog{Phase: EventChosen, Appointment: ap},
				gen:          vm.nextGen(),
			}
			return nil
		}
	}
	return &domain.NotFoundError{ID: id}
}

// ConfirmCancel deletes the bound appointment. Success removes every
// record with its id; failure leaves the list as it was.
func (vm *ViewModel) ConfirmCancel(ctx context.Context) error {
	vm.mu.Lock()
	switch vm.cancel.Phase {
	case Idle:
		vm.mu.Unlock()
		return ErrNoDialog
	case Submitting:
		vm.mu.Unlock()
		return ErrBusy
	}

	vm.cancel.Phase = Submitting
	gen, id := vm.cancel.gen, vm.cancel.Appointment.ID
	vm.mu.Unlock()

	err := vm.api.DeleteAppointment(ctx, id)

	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.cancel.gen != gen || vm.cancel.Phase != Submitting {
		return ErrStale
	}
	if err != nil {
		vm.cancel.Phase = EventChosen
		if domain.IsNotFound(err) {
			vm.errorMessage = MsgNotFound
		} else {
			vm.errorMessage = MsgCancelFailed
		}
		return err
	}

	kept := make([]dto.Appointment, 0, len(vm.appointments))
	for _, ap := range vm.appointments {
		if ap.ID != id {
			kept = append(kept, ap)
		}
	}
	vm.appointments = kept
	vm.writes++
	vm.cancel = cancelDialog{}
	vm.errorMessage = ""
	return nil
}

func (vm *ViewModel) CloseCancel() {
	vm.mu.Lock()
	vm.cancel = cancelDialog{gen: vm.nextGen()}
	vm.mu.Unlock()
}
