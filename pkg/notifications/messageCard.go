package notifications

const messageCardType = "MessageCard"
const messageCardContext = "http://schema.org/extensions"
const openURI = "OpenUri"
const defaultOS = "default"

// MessageCard is the legacy actionable message card format accepted by Teams incoming webhooks
type MessageCard struct {
	Type            string    `json:"@type"`
	Context         string    `json:"@context"`
	CorrelationID   string    `json:"correlationId"`
	ThemeColor      string    `json:"themeColor"`
	Title           string    `json:"title"`
	Summary         string    `json:"summary"`
	Sections        []Section `json:"sections"`
	Text            string    `json:"text"`
	PotentialAction []Action  `json:"potentialAction"`
}

type Section struct {
	ActivityTitle    string `json:"activityTitle,omitempty"`
	ActivitySubtitle string `json:"activitySubtitle,omitempty"`
	ActivityImage    string `json:"activityImage,omitempty"`
	Facts            []Fact `json:"facts,omitempty"`
	Text             string `json:"text,omitempty"`
	StartGroup       bool   `json:"startGroup,omitempty"`
}

type Fact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Action struct {
	Type    string   `json:"@type"`
	Name    string   `json:"name"`
	Targets []Target `json:"targets"`
}

// Target is where an action points to. Uri is left out when it is not known.
type Target struct {
	OS  string `json:"os"`
	URI string `json:"uri,omitempty"`
}

func openURIAction(name string, uri string) Action {
	return Action{
		Type: openURI,
		Name: name,
		Targets: []Target{
			{OS: defaultOS, URI: uri},
		},
	}
}
