package dialogue

import "agendador/models"

// Merge combines the fields extracted this turn with the existing draft.
// Present incoming fields win; absent ones are preserved. The guest list is
// replaced wholesale when restated — there is no accumulation across turns
// beyond what the extraction step re-states. Pure function of its inputs.
func Merge(existing *models.ConversationDraft, incoming *models.ScheduleFields) *models.ConversationDraft {
	merged := existing.Clone()
	if incoming == nil {
		return merged
	}

	if incoming.Title != "" {
		merged.Title = incoming.Title
	}
	if incoming.Date != "" {
		merged.Date = incoming.Date
	}
	if incoming.Time != "" {
		merged.Time = incoming.Time
	}
	if incoming.DurationMinutes > 0 {
		merged.DurationMinutes = incoming.DurationMinutes
	}
	if incoming.Guests != nil {
		merged.RawGuests = append([]string(nil), incoming.Guests...)
		merged.ResolvedGuests = nil
	}
	return merged
}

// MissingFields reports which required fields the draft still lacks, in the
// fixed order used for user prompts.
func MissingFields(d *models.ConversationDraft) []string {
	var missing []string
	if d.Title == "" {
		missing = append(missing, "título")
	}
	if d.Date == "" {
		missing = append(missing, "data")
	}
	if d.Time == "" {
		missing = append(missing, "hora")
	}
	if len(d.ResolvedGuests) == 0 {
		missing = append(missing, "convidados")
	}
	return missing
}
