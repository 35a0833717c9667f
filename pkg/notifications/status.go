package notifications

import (
	"github.com/gimlet-io/teams-notify/pkg/dx"
	"github.com/sirupsen/logrus"
)

const iconBaseURL = "https://raw.githubusercontent.com/Skitionek/notify-microsoft-teams/master/icons/"

// StatusDescriptor is the fixed presentation of a status on the card
type StatusDescriptor struct {
	ID    dx.Status
	Icon  string
	Color string
	Title string
	Image string
}

var statusDescriptors = map[dx.Status]StatusDescriptor{
	dx.Success: {
		ID:    dx.Success,
		Icon:  "✓",
		Color: "#2cbe4e",
		Title: "Success!",
		Image: iconBaseURL + "success.png",
	},
	dx.Failure: {
		ID:    dx.Failure,
		Icon:  "✗",
		Color: "#cb2431",
		Title: "Failure",
		Image: iconBaseURL + "failure.png",
	},
	dx.Cancelled: {
		ID:    dx.Cancelled,
		Icon:  "o",
		Color: "#ffc107",
		Title: "Cancelled",
		Image: iconBaseURL + "cancelled.png",
	},
	dx.Skipped: {
		ID:    dx.Skipped,
		Icon:  "⤼",
		Color: "#1a6aff",
		Title: "Skipped",
		Image: iconBaseURL + "skipped.png",
	},
	dx.Unknown: {
		ID:    dx.Unknown,
		Icon:  "?",
		Color: "#999",
		Title: "No job context has been provided",
		Image: iconBaseURL + "unknown.png",
	},
}

// ResolveStatus looks up the descriptor of a raw status string.
// Empty and unrecognized values are logged and fall back to the unknown descriptor.
func ResolveStatus(raw string) StatusDescriptor {
	if raw == "" {
		logrus.Errorf("unknown status value: %q", raw)
		return statusDescriptors[dx.Unknown]
	}

	status, err := dx.StatusFromString(raw)
	if err != nil {
		logrus.Errorf("not implemented status value: %q", raw)
		return statusDescriptors[dx.Unknown]
	}

	return statusDescriptors[status]
}
