package conversation

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"riverwood/models"

	"go.uber.org/zap"
)

const mainMenuText = `Welcome to Riverwood Cabins! Reply with a number:
1. See our cabins
2. Book a stay
3. Activities
4. My reservation
5. Share your experience

(You can type "menu" at any time to come back here.)`

// handleMainMenu routes a numeric selection to a top-level feature.
func (d *Dispatcher) handleMainMenu(ctx context.Context, conv *models.Conversation, turn *models.TurnPayload) (models.ConversationState, models.Payload, error) {
	switch Normalize(turn.Text) {
	case "1":
		text, err := d.lodgingListText()
		if err != nil {
			return "", nil, err
		}
		d.say(ctx, turn.SubjectID, text)
		return models.StateLodgingList, models.Payload{}, nil
	case "2":
		d.say(ctx, turn.SubjectID, "Great! When would you like to stay?\n"+
			"Send your dates like this: 15/08/2025 - 17/08/2025")
		return models.StateReservationDates, models.Payload{}, nil
	case "3":
		text, videoURL, err := d.activitiesText()
		if err != nil {
			return "", nil, err
		}
		d.say(ctx, turn.SubjectID, text)
		d.sayVideo(ctx, turn.SubjectID, videoURL)
		return models.StateActivities, models.Payload{}, nil
	case "4":
		text, err := d.supportText(ctx, turn.SubjectID)
		if err != nil {
			return "", nil, err
		}
		d.say(ctx, turn.SubjectID, text)
		return models.StatePostBookingSupport, models.Payload{}, nil
	case "5":
		d.say(ctx, turn.SubjectID, "We'd love to hear about your stay! Send us a few words.")
		return models.StateShareExperience, models.Payload{}, nil
	default:
		d.say(ctx, turn.SubjectID, mainMenuText)
		return models.StateMainMenu, conv.Payload, nil
	}
}

// lodgingListText builds the numbered cabin menu.
func (d *Dispatcher) lodgingListText() (string, error) {
	cabins, err := d.Cabins.GetAll()
	if err != nil {
		return "", fmt.Errorf("failed to list cabins: %w", err)
	}
	if len(cabins) == 0 {
		return "We have no cabins listed right now. Type \"menu\" to go back.", nil
	}

	var b strings.Builder
	b.WriteString("Our cabins — reply with a number for details:\n")
	for i, c := range cabins {
		line := fmt.Sprintf("%d. %s", i+1, c.Name)
		if ct, err := d.Cabins.GetTypeByID(c.TypeID); err == nil {
			line += fmt.Sprintf(" (up to %d guests, from $%.2f/night)", ct.Capacity, ct.NightlyRate)
		}
		b.WriteString(line + "\n")
	}
	return b.String(), nil
}

// handleLodgingList shows the detail of the selected cabin.
func (d *Dispatcher) handleLodgingList(ctx context.Context, conv *models.Conversation, turn *models.TurnPayload) (models.ConversationState, models.Payload, error) {
	cabins, err := d.Cabins.GetAll()
	if err != nil {
		return "", nil, fmt.Errorf("failed to list cabins: %w", err)
	}

	idx, err := strconv.Atoi(Normalize(turn.Text))
	if err != nil || idx < 1 || idx > len(cabins) {
		text, lerr := d.lodgingListText()
		if lerr != nil {
			return "", nil, lerr
		}
		d.say(ctx, turn.SubjectID, text)
		return models.StateLodgingList, conv.Payload, nil
	}

	d.sendCabinDetail(ctx, turn.SubjectID, &cabins[idx-1])
	return models.StateLodgingDetail, conv.Payload, nil
}

// handleLodgingDetail lets the subject jump between cabin details.
func (d *Dispatcher) handleLodgingDetail(ctx context.Context, conv *models.Conversation, turn *models.TurnPayload) (models.ConversationState, models.Payload, error) {
	cabins, err := d.Cabins.GetAll()
	if err != nil {
		return "", nil, fmt.Errorf("failed to list cabins: %w", err)
	}

	idx, err := strconv.Atoi(Normalize(turn.Text))
	if err == nil && idx >= 1 && idx <= len(cabins) {
		d.sendCabinDetail(ctx, turn.SubjectID, &cabins[idx-1])
		return models.StateLodgingDetail, conv.Payload, nil
	}

	d.say(ctx, turn.SubjectID, "Reply with another cabin number to see more, or type \"menu\" to go back.")
	return models.StateLodgingDetail, conv.Payload, nil
}

func (d *Dispatcher) sendCabinDetail(ctx context.Context, subjectID string, cabin *models.Cabin) {
	caption := fmt.Sprintf("%s\n%s", cabin.Name, cabin.Description)
	if ct, err := d.Cabins.GetTypeByID(cabin.TypeID); err == nil {
		caption += fmt.Sprintf("\nSleeps up to %d. From $%.2f per night.", ct.Capacity, ct.NightlyRate)
	}
	caption += "\n\nReply with another number to see more cabins, or type \"menu\" to go back."
	d.sayImage(ctx, subjectID, cabin.ImageURL, caption)
}

// activitiesText builds the activities listing, returning also the video of
// the first activity that has one.
func (d *Dispatcher) activitiesText() (string, string, error) {
	activities, err := d.Activities.GetAll()
	if err != nil {
		return "", "", fmt.Errorf("failed to list activities: %w", err)
	}
	if len(activities) == 0 {
		return "No activities are scheduled right now. Type \"menu\" to go back.", "", nil
	}

	var b strings.Builder
	videoURL := ""
	b.WriteString("Things to do at Riverwood:\n")
	for _, a := range activities {
		b.WriteString(fmt.Sprintf("• %s — %s", a.Name, a.Description))
		if a.Schedule != "" {
			b.WriteString(" (" + a.Schedule + ")")
		}
		b.WriteString("\n")
		if videoURL == "" && a.VideoURL != "" {
			videoURL = a.VideoURL
		}
	}
	b.WriteString("\nType \"menu\" to go back.")
	return b.String(), videoURL, nil
}

// handleActivities re-prompts; the listing is informational.
func (d *Dispatcher) handleActivities(ctx context.Context, conv *models.Conversation, turn *models.TurnPayload) (models.ConversationState, models.Payload, error) {
	text, videoURL, err := d.activitiesText()
	if err != nil {
		return "", nil, err
	}
	d.say(ctx, turn.SubjectID, text)
	d.sayVideo(ctx, turn.SubjectID, videoURL)
	return models.StateActivities, conv.Payload, nil
}

// supportText summarizes the subject's reservations.
func (d *Dispatcher) supportText(ctx context.Context, subjectID string) (string, error) {
	reservations, err := d.Reservations.ListReservationsBySubject(ctx, subjectID)
	if err != nil {
		return "", fmt.Errorf("failed to list reservations: %w", err)
	}
	if len(reservations) == 0 {
		return "You have no reservations with us yet. Type \"menu\" to go back, or 2 there to book a stay!", nil
	}

	var b strings.Builder
	b.WriteString("Your reservations:\n")
	hasPending := false
	for _, r := range reservations {
		b.WriteString(fmt.Sprintf("• %s to %s — %s ($%.2f)\n",
			r.StartDate.Format(dateFormat), r.EndDate.Format(dateFormat), r.Status, r.TotalPrice))
		if r.Status == models.ReservationPending {
			hasPending = true
		}
	}
	if hasPending {
		b.WriteString("\nReply 1 to cancel your pending reservation, or type \"menu\" to go back.")
	} else {
		b.WriteString("\nType \"menu\" to go back.")
	}
	return b.String(), nil
}

// handlePostBookingSupport lets the subject cancel their pending reservation.
func (d *Dispatcher) handlePostBookingSupport(ctx context.Context, conv *models.Conversation, turn *models.TurnPayload) (models.ConversationState, models.Payload, error) {
	if Normalize(turn.Text) == "1" {
		reservations, err := d.Reservations.ListReservationsBySubject(ctx, turn.SubjectID)
		if err != nil {
			return "", nil, fmt.Errorf("failed to list reservations: %w", err)
		}
		for _, r := range reservations {
			if r.Status != models.ReservationPending {
				continue
			}
			if err := d.Reservations.UpdateReservationStatus(ctx, r.ID, models.ReservationCancelled); err != nil {
				return "", nil, fmt.Errorf("failed to cancel reservation %s: %w", r.ID, err)
			}
			d.say(ctx, turn.SubjectID, "Your pending reservation has been cancelled. We hope to see you another time!\n\n"+mainMenuText)
			return models.StateMainMenu, models.Payload{}, nil
		}
		d.say(ctx, turn.SubjectID, "You have no pending reservation to cancel. Type \"menu\" to go back.")
		return models.StatePostBookingSupport, conv.Payload, nil
	}

	text, err := d.supportText(ctx, turn.SubjectID)
	if err != nil {
		return "", nil, err
	}
	d.say(ctx, turn.SubjectID, text)
	return models.StatePostBookingSupport, conv.Payload, nil
}

// handleShareExperience records a guest testimonial in the logs and thanks
// the subject.
func (d *Dispatcher) handleShareExperience(ctx context.Context, conv *models.Conversation, turn *models.TurnPayload) (models.ConversationState, models.Payload, error) {
	text := strings.TrimSpace(turn.Text)
	if text == "" {
		d.say(ctx, turn.SubjectID, "Send us a few words about your stay, or type \"menu\" to go back.")
		return models.StateShareExperience, conv.Payload, nil
	}

	d.Logger.Info("guest shared an experience",
		zap.String("subject", turn.SubjectID), zap.String("text", text))
	d.say(ctx, turn.SubjectID, "Thank you so much for sharing! It means a lot to us.\n\n"+mainMenuText)
	return models.StateMainMenu, models.Payload{}, nil
}
