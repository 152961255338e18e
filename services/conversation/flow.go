package conversation

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"riverwood/models"
	"riverwood/services/booking"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// handleReservationDates parses the requested stay range and opens the flow.
func (d *Dispatcher) handleReservationDates(ctx context.Context, conv *models.Conversation, turn *models.TurnPayload) (models.ConversationState, models.Payload, error) {
	start, end, err := ParseDateRange(turn.Text, d.MaxStayNights)
	if err != nil {
		d.say(ctx, turn.SubjectID, dateErrorMessage(err, d.MaxStayNights))
		return models.StateReservationDates, conv.Payload, nil
	}

	payload := conv.Payload.Clone()
	payload[keyStartDate] = start.Format(dateFormat)
	payload[keyEndDate] = end.Format(dateFormat)

	// A conflict bounce from lodging selection lands back here with the
	// contact details already collected; skip straight to cabin choice.
	if payload[keyGuestName] != "" && payload[keyGuestPhone] != "" && payload[keyPartySize] != "" {
		return d.promptLodging(ctx, turn.SubjectID, payload)
	}

	d.say(ctx, turn.SubjectID, fmt.Sprintf("Noted: %s to %s. What's your full name?",
		start.Format(dateFormat), end.Format(dateFormat)))
	return models.StateReservationName, payload, nil
}

func dateErrorMessage(err error, maxStay int) string {
	switch {
	case errors.Is(err, ErrEmptyRange):
		return "The check-out date must be after the check-in date. Please send the dates again, like: 15/08/2025 - 17/08/2025"
	case errors.Is(err, ErrStayTooLong):
		return fmt.Sprintf("We can host stays of up to %d nights. Please send a shorter range, like: 15/08/2025 - 17/08/2025", maxStay)
	case errors.Is(err, ErrDateInvalid):
		return "One of those dates doesn't exist. Please send the dates again, like: 15/08/2025 - 17/08/2025"
	default:
		return "I couldn't read those dates. Please send them like: 15/08/2025 - 17/08/2025"
	}
}

// handleReservationName collects the guest's name.
func (d *Dispatcher) handleReservationName(ctx context.Context, conv *models.Conversation, turn *models.TurnPayload) (models.ConversationState, models.Payload, error) {
	name := strings.TrimSpace(turn.Text)
	if len(name) < 2 {
		d.say(ctx, turn.SubjectID, "Please send your full name.")
		return models.StateReservationName, conv.Payload, nil
	}

	payload := conv.Payload.Clone()
	payload[keyGuestName] = name
	d.say(ctx, turn.SubjectID, fmt.Sprintf("Thanks, %s! What's your phone number?", name))
	return models.StateReservationPhone, payload, nil
}

var phonePattern = regexp.MustCompile(`^\+?[0-9 \-()]{7,20}$`)

// handleReservationPhone collects the guest's phone number.
func (d *Dispatcher) handleReservationPhone(ctx context.Context, conv *models.Conversation, turn *models.TurnPayload) (models.ConversationState, models.Payload, error) {
	phone := strings.TrimSpace(turn.Text)
	if !phonePattern.MatchString(phone) {
		d.say(ctx, turn.SubjectID, "That doesn't look like a phone number. Please send it with digits only, e.g. +54 11 5555 1234.")
		return models.StateReservationPhone, conv.Payload, nil
	}

	payload := conv.Payload.Clone()
	payload[keyGuestPhone] = phone
	d.say(ctx, turn.SubjectID, "How many guests will be staying?")
	return models.StateReservationPartySize, payload, nil
}

// handleReservationPartySize collects the party size and moves on to cabin
// selection.
func (d *Dispatcher) handleReservationPartySize(ctx context.Context, conv *models.Conversation, turn *models.TurnPayload) (models.ConversationState, models.Payload, error) {
	size, err := strconv.Atoi(Normalize(turn.Text))
	if err != nil || size < 1 || size > 50 {
		d.say(ctx, turn.SubjectID, "Please send the number of guests as a number, e.g. 4.")
		return models.StateReservationPartySize, conv.Payload, nil
	}

	payload := conv.Payload.Clone()
	payload[keyPartySize] = strconv.Itoa(size)
	return d.promptLodging(ctx, turn.SubjectID, payload)
}

// promptLodging sends the cabin options and transitions to lodging selection.
func (d *Dispatcher) promptLodging(ctx context.Context, subjectID string, payload models.Payload) (models.ConversationState, models.Payload, error) {
	cabins, err := d.Cabins.GetAll()
	if err != nil {
		return "", nil, fmt.Errorf("failed to list cabins: %w", err)
	}
	if len(cabins) == 0 {
		d.say(ctx, subjectID, "We have no cabins available to book right now, sorry!\n\n"+mainMenuText)
		return models.StateMainMenu, models.Payload{}, nil
	}

	var b strings.Builder
	b.WriteString("Pick a cabin — reply with a number:\n")
	for i, c := range cabins {
		line := fmt.Sprintf("%d. %s", i+1, c.Name)
		if ct, err := d.Cabins.GetTypeByID(c.TypeID); err == nil {
			line += fmt.Sprintf(" (up to %d guests, from $%.2f/night)", ct.Capacity, ct.NightlyRate)
		}
		b.WriteString(line + "\n")
	}
	d.say(ctx, subjectID, b.String())
	return models.StateReservationLodging, payload, nil
}

// handleReservationLodging validates the chosen cabin against party size and
// availability. A date conflict bounces back to the dates step with the
// contact details retained; a capacity problem re-prompts in place.
func (d *Dispatcher) handleReservationLodging(ctx context.Context, conv *models.Conversation, turn *models.TurnPayload) (models.ConversationState, models.Payload, error) {
	cabins, err := d.Cabins.GetAll()
	if err != nil {
		return "", nil, fmt.Errorf("failed to list cabins: %w", err)
	}

	idx, err := strconv.Atoi(Normalize(turn.Text))
	if err != nil || idx < 1 || idx > len(cabins) {
		d.say(ctx, turn.SubjectID, fmt.Sprintf("Please reply with a number between 1 and %d.", len(cabins)))
		return models.StateReservationLodging, conv.Payload, nil
	}
	cabin := cabins[idx-1]

	ct, err := d.Cabins.GetTypeByID(cabin.TypeID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to fetch cabin type %s: %w", cabin.TypeID, err)
	}

	partySize, _ := strconv.Atoi(conv.Payload[keyPartySize])
	if partySize > ct.Capacity {
		d.say(ctx, turn.SubjectID, fmt.Sprintf("%s sleeps up to %d guests and your group is %d. Please pick another cabin.",
			cabin.Name, ct.Capacity, partySize))
		return models.StateReservationLodging, conv.Payload, nil
	}

	start, end, err := payloadDates(conv.Payload)
	if err != nil {
		// The stored dates are unreadable; collect them again.
		d.say(ctx, turn.SubjectID, "Let's double-check your dates. Send them like: 15/08/2025 - 17/08/2025")
		return models.StateReservationDates, conv.Payload, nil
	}

	conflict, err := d.Reservations.HasConflict(ctx, cabin.ID, start, end)
	if err != nil {
		return "", nil, fmt.Errorf("availability check failed for cabin %s: %w", cabin.ID, err)
	}
	if conflict {
		// Retry in place: back to dates, keeping name/phone/party size.
		payload := conv.Payload.Clone()
		delete(payload, keyStartDate)
		delete(payload, keyEndDate)
		d.say(ctx, turn.SubjectID, fmt.Sprintf(
			"%s is already booked between %s and %s. Please send different dates, like: 15/08/2025 - 17/08/2025",
			cabin.Name, start.Format(dateFormat), end.Format(dateFormat)))
		return models.StateReservationDates, payload, nil
	}

	nights := int(end.Sub(start).Hours() / 24)
	price := booking.Quote(*ct, start, nights)

	payload := conv.Payload.Clone()
	payload[keyCabinID] = cabin.ID
	payload[keyCabinName] = cabin.Name
	payload[keyCabinTypeID] = ct.ID
	payload[keyQuotedPrice] = strconv.FormatFloat(price, 'f', 2, 64)

	d.say(ctx, turn.SubjectID, fmt.Sprintf(
		"%s for %d night(s), %s to %s: $%s total.\n\n"+
			"House rules: check-in after 2pm, check-out by 10am, no loud music after 11pm, pets welcome on a leash.\n\n"+
			"Reply with anything to continue to payment, or type \"menu\" to cancel.",
		cabin.Name, nights, start.Format(dateFormat), end.Format(dateFormat), payload[keyQuotedPrice]))
	return models.StateReservationConditions, payload, nil
}

// handleReservationConditions acknowledges the house rules and asks for the
// payment proof.
func (d *Dispatcher) handleReservationConditions(ctx context.Context, conv *models.Conversation, turn *models.TurnPayload) (models.ConversationState, models.Payload, error) {
	d.say(ctx, turn.SubjectID,
		"To hold your reservation, please transfer 50% of the total and send a photo or PDF of the receipt here.")
	return models.StateReservationPayment, conv.Payload, nil
}

// handleReservationPayment records the attachment reference of the payment
// proof. The content is never validated; a human reviews it later.
func (d *Dispatcher) handleReservationPayment(ctx context.Context, conv *models.Conversation, turn *models.TurnPayload) (models.ConversationState, models.Payload, error) {
	if turn.Kind != models.MessageKindImage && turn.Kind != models.MessageKindDocument {
		d.say(ctx, turn.SubjectID, "Please attach a photo or PDF of your transfer receipt, or type \"menu\" to cancel.")
		return models.StateReservationPayment, conv.Payload, nil
	}

	payload := conv.Payload.Clone()
	payload[keyPaymentRef] = turn.MessageID

	d.say(ctx, turn.SubjectID, fmt.Sprintf(
		"Got it! To confirm:\n%s, %s to %s, %s guest(s), $%s total.\n\nReply 1 to confirm or 2 to cancel.",
		payload[keyCabinName], payload[keyStartDate], payload[keyEndDate],
		payload[keyPartySize], payload[keyQuotedPrice]))
	return models.StateReservationConfirm, payload, nil
}

// handleReservationConfirm creates the pending reservation on an affirmative
// answer and discards the collected payload on a negative one.
func (d *Dispatcher) handleReservationConfirm(ctx context.Context, conv *models.Conversation, turn *models.TurnPayload) (models.ConversationState, models.Payload, error) {
	switch Normalize(turn.Text) {
	case "1", "si", "sí", "yes", "y":
		return d.createReservation(ctx, conv, turn)
	case "2", "no", "n":
		d.say(ctx, turn.SubjectID, "No problem, nothing was booked. Come back any time!\n\n"+mainMenuText)
		return models.StateMainMenu, models.Payload{}, nil
	default:
		d.say(ctx, turn.SubjectID, "Reply 1 to confirm your reservation or 2 to cancel.")
		return models.StateReservationConfirm, conv.Payload, nil
	}
}

func (d *Dispatcher) createReservation(ctx context.Context, conv *models.Conversation, turn *models.TurnPayload) (models.ConversationState, models.Payload, error) {
	start, end, err := payloadDates(conv.Payload)
	if err != nil {
		d.say(ctx, turn.SubjectID, "Let's double-check your dates. Send them like: 15/08/2025 - 17/08/2025")
		return models.StateReservationDates, conv.Payload, nil
	}
	partySize, _ := strconv.Atoi(conv.Payload[keyPartySize])
	price, _ := strconv.ParseFloat(conv.Payload[keyQuotedPrice], 64)

	res := &models.Reservation{
		CabinID:         conv.Payload[keyCabinID],
		SubjectID:       turn.SubjectID,
		GuestName:       conv.Payload[keyGuestName],
		GuestPhone:      conv.Payload[keyGuestPhone],
		StartDate:       start,
		EndDate:         end,
		PartySize:       partySize,
		TotalPrice:      price,
		PaymentProofRef: conv.Payload[keyPaymentRef],
	}

	created, err := d.Reservations.CreateReservation(ctx, res)
	if err != nil {
		// Most likely a booking race: someone took the dates between the
		// availability check and now. Bounce back to dates, keep the contact
		// details.
		d.Logger.Warn("reservation creation failed",
			zap.String("subject", turn.SubjectID), zap.Error(err))
		payload := conv.Payload.Clone()
		delete(payload, keyStartDate)
		delete(payload, keyEndDate)
		delete(payload, keyCabinID)
		delete(payload, keyCabinName)
		delete(payload, keyCabinTypeID)
		delete(payload, keyQuotedPrice)
		d.say(ctx, turn.SubjectID,
			"Those dates were just taken, sorry! Please send different dates, like: 15/08/2025 - 17/08/2025")
		return models.StateReservationDates, payload, nil
	}

	if err := d.Guests.Upsert(&models.Guest{
		ID:        uuid.New().String(),
		Name:      created.GuestName,
		Phone:     created.GuestPhone,
		SubjectID: turn.SubjectID,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		// Contact bookkeeping must not undo a created reservation.
		d.Logger.Warn("failed to upsert guest record",
			zap.String("subject", turn.SubjectID), zap.Error(err))
	}

	d.say(ctx, turn.SubjectID, fmt.Sprintf(
		"Your reservation is in! Reference: %s. We'll confirm it as soon as we verify your payment. See you at Riverwood!\n\n%s",
		created.ID, mainMenuText))
	return models.StateMainMenu, models.Payload{}, nil
}

// payloadDates reads the stay range collected earlier in the flow.
func payloadDates(payload models.Payload) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(dateFormat, payload[keyStartDate], time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.ParseInLocation(dateFormat, payload[keyEndDate], time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
