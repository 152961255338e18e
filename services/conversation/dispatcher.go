package conversation

import (
	"context"
	"fmt"
	"strings"
	"sync"

	activityRepo "riverwood/database/repository/activity"
	cabinRepo "riverwood/database/repository/cabin"
	guestRepo "riverwood/database/repository/guest"
	"riverwood/models"
	"riverwood/services/booking"
	"riverwood/services/messaging"

	"go.uber.org/zap"
)

// Payload keys used by the reservation flow.
const (
	keyStartDate   = "start_date"
	keyEndDate     = "end_date"
	keyGuestName   = "guest_name"
	keyGuestPhone  = "guest_phone"
	keyPartySize   = "party_size"
	keyCabinID     = "cabin_id"
	keyCabinName   = "cabin_name"
	keyCabinTypeID = "cabin_type_id"
	keyQuotedPrice = "quoted_price"
	keyPaymentRef  = "payment_ref"
)

const dateFormat = "02/01/2006"

// handlerFunc processes one turn for a conversation in a given state and
// returns the next state and payload, which the dispatcher persists. Handlers
// send outbound messages themselves; validation failures re-prompt by
// returning the current state, never an error. An error return means the turn
// could not be processed and should be retried by the queue.
type handlerFunc func(ctx context.Context, conv *models.Conversation, turn *models.TurnPayload) (models.ConversationState, models.Payload, error)

// Dispatcher routes each turn to the handler for the subject's current state
// and persists the resulting transition. All collaborators are injected.
type Dispatcher struct {
	Store        StateStore
	Messenger    messaging.Messenger
	Reservations booking.ReservationService
	Cabins       cabinRepo.CabinRepository
	Activities   activityRepo.ActivityRepository
	Guests       guestRepo.GuestRepository

	MaxStayNights int
	Logger        *zap.Logger

	handlers     map[models.ConversationState]handlerFunc
	subjectLocks sync.Map // subjectID → *sync.Mutex
}

// NewDispatcher wires the transition table.
func NewDispatcher(
	store StateStore,
	messenger messaging.Messenger,
	reservations booking.ReservationService,
	cabins cabinRepo.CabinRepository,
	activities activityRepo.ActivityRepository,
	guests guestRepo.GuestRepository,
	maxStayNights int,
	logger *zap.Logger,
) *Dispatcher {
	d := &Dispatcher{
		Store:         store,
		Messenger:     messenger,
		Reservations:  reservations,
		Cabins:        cabins,
		Activities:    activities,
		Guests:        guests,
		MaxStayNights: maxStayNights,
		Logger:        logger,
	}
	d.handlers = map[models.ConversationState]handlerFunc{
		models.StateMainMenu:           d.handleMainMenu,
		models.StateLodgingList:        d.handleLodgingList,
		models.StateLodgingDetail:      d.handleLodgingDetail,
		models.StateActivities:         d.handleActivities,
		models.StatePostBookingSupport: d.handlePostBookingSupport,
		models.StateShareExperience:    d.handleShareExperience,

		models.StateReservationDates:      d.handleReservationDates,
		models.StateReservationName:       d.handleReservationName,
		models.StateReservationPhone:      d.handleReservationPhone,
		models.StateReservationPartySize:  d.handleReservationPartySize,
		models.StateReservationLodging:    d.handleReservationLodging,
		models.StateReservationConditions: d.handleReservationConditions,
		models.StateReservationPayment:    d.handleReservationPayment,
		models.StateReservationConfirm:    d.handleReservationConfirm,
	}
	return d
}

// Normalize lowercases and trims an input token for matching against menu
// options and commands.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// isEscape reports whether the input is the global escape command that
// returns the subject to the main menu from any state.
func isEscape(input string) bool {
	return input == "menu" || input == "menú"
}

// Dispatch processes one turn: load the conversation, route it, persist the
// transition. The state write happens after the handler completes so a
// subject's next turn sees exactly what this one returned.
//
// Turns for one subject never run concurrently. The load-handle-persist cycle
// is a read-modify-write on the conversation, so without the per-subject lock
// a worker concurrency above one could lose a transition. Lock entries are
// never evicted; the map is bounded by the subject population.
func (d *Dispatcher) Dispatch(ctx context.Context, turn models.TurnPayload) error {
	mu := d.lockSubject(turn.SubjectID)
	mu.Lock()
	defer mu.Unlock()

	conv, err := d.Store.Get(ctx, turn.SubjectID)
	if err != nil {
		return fmt.Errorf("failed to load conversation for %s: %w", turn.SubjectID, err)
	}

	input := Normalize(turn.Text)

	// Global escape hatch, evaluated before any state-specific routing.
	if isEscape(input) {
		d.say(ctx, turn.SubjectID, mainMenuText)
		return d.Store.Set(ctx, turn.SubjectID, models.StateMainMenu, models.Payload{})
	}

	handler, ok := d.handlers[conv.State]
	if !ok {
		// Unknown or corrupt persisted state: recover, never crash.
		d.Logger.Warn("unknown conversation state, forcing main menu",
			zap.String("subject", turn.SubjectID), zap.String("state", string(conv.State)))
		d.say(ctx, turn.SubjectID, "Sorry, we lost track of our conversation. Let's start over.\n\n"+mainMenuText)
		return d.Store.Set(ctx, turn.SubjectID, models.StateMainMenu, models.Payload{})
	}

	next, payload, err := handler(ctx, conv, &turn)
	if err != nil {
		return err
	}
	if payload == nil {
		payload = models.Payload{}
	}
	return d.Store.Set(ctx, turn.SubjectID, next, payload)
}

// ResetWithApology sends a short apology and returns the subject to the main
// menu. The queue worker calls this after a turn exhausts its retries.
func (d *Dispatcher) ResetWithApology(ctx context.Context, subjectID string) {
	mu := d.lockSubject(subjectID)
	mu.Lock()
	defer mu.Unlock()

	d.say(ctx, subjectID, "Sorry, something went wrong on our side. Let's start over.\n\n"+mainMenuText)
	if err := d.Store.Set(ctx, subjectID, models.StateMainMenu, models.Payload{}); err != nil {
		d.Logger.Error("failed to reset conversation after turn failure",
			zap.String("subject", subjectID), zap.Error(err))
	}
}

// lockSubject returns the mutex serializing turns for one subject, creating
// it on first use.
func (d *Dispatcher) lockSubject(subjectID string) *sync.Mutex {
	lock, _ := d.subjectLocks.LoadOrStore(subjectID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// say sends a text message, logging and absorbing any send failure so the
// turn keeps going.
func (d *Dispatcher) say(ctx context.Context, subjectID, text string) {
	if err := d.Messenger.SendText(ctx, subjectID, text); err != nil {
		d.Logger.Warn("failed to send text message",
			zap.String("subject", subjectID), zap.Error(err))
	}
}

// sayImage sends an image with a caption, falling back to text-only when the
// image send fails.
func (d *Dispatcher) sayImage(ctx context.Context, subjectID, url, caption string) {
	if url == "" {
		d.say(ctx, subjectID, caption)
		return
	}
	if err := d.Messenger.SendImage(ctx, subjectID, url, caption); err != nil {
		d.Logger.Warn("failed to send image, falling back to text",
			zap.String("subject", subjectID), zap.Error(err))
		d.say(ctx, subjectID, caption)
	}
}

// sayVideo sends a video, logging and absorbing any failure.
func (d *Dispatcher) sayVideo(ctx context.Context, subjectID, url string) {
	if url == "" {
		return
	}
	if err := d.Messenger.SendVideo(ctx, subjectID, url); err != nil {
		d.Logger.Warn("failed to send video",
			zap.String("subject", subjectID), zap.Error(err))
	}
}
