package dx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// JobContext is what the workflow passes about itself: the job status and the
// results of its steps and of the jobs it needs
type JobContext struct {
	Job   Job     `json:"job"`
	Steps Results `json:"steps"`
	Needs Results `json:"needs"`
}

// Job is the `job` context of a workflow run
type Job struct {
	Status string `json:"status"`
}

// Result is a single entry of the `steps` or `needs` context
type Result struct {
	ID         string  `json:"-"`
	Outcome    string  `json:"outcome,omitempty"`
	Conclusion string  `json:"conclusion,omitempty"`
	Result     string  `json:"result,omitempty"`
	Outputs    Outputs `json:"outputs,omitempty"`
}

// Results keeps the entries in the order they appear in the context object
type Results []Result

// Output is a named output of a step or job
type Output struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Outputs keeps outputs in document order
type Outputs []Output

// ParseJobContext builds the job context from the JSON serialized `job`, `steps` and `needs` contexts.
// Empty inputs mean the context was not provided.
func ParseJobContext(job, steps, needs string) (*JobContext, error) {
	jobContext := &JobContext{
		Job: Job{Status: Unknown.String()},
	}

	if strings.TrimSpace(job) != "" {
		err := json.Unmarshal([]byte(job), &jobContext.Job)
		if err != nil {
			return nil, errors.Wrap(err, "cannot parse job context")
		}
		if jobContext.Job.Status == "" {
			jobContext.Job.Status = Unknown.String()
		}
	}
	if strings.TrimSpace(steps) != "" {
		err := json.Unmarshal([]byte(steps), &jobContext.Steps)
		if err != nil {
			return nil, errors.Wrap(err, "cannot parse steps context")
		}
	}
	if strings.TrimSpace(needs) != "" {
		err := json.Unmarshal([]byte(needs), &jobContext.Needs)
		if err != nil {
			return nil, errors.Wrap(err, "cannot parse needs context")
		}
	}

	return jobContext, nil
}

// StatusOf returns the status string stored in the named field.
// Falls back to the other status fields when the named one is empty.
func (r Result) StatusOf(field string) string {
	var candidates []string
	switch field {
	case "outcome":
		candidates = []string{r.Outcome, r.Conclusion, r.Result}
	case "result":
		candidates = []string{r.Result, r.Conclusion, r.Outcome}
	case "conclusion":
		candidates = []string{r.Conclusion, r.Outcome, r.Result}
	}
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

// UnmarshalJSON decodes a JSON object keyed by step or job id, keeping key order
func (r *Results) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*r = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected an object keyed by id, got %v", tok)
	}

	results := Results{}
	for dec.More() {
		keyToken, err := dec.Token()
		if err != nil {
			return err
		}
		var result Result
		err = dec.Decode(&result)
		if err != nil {
			return errors.Wrapf(err, "cannot decode %s", keyToken)
		}
		result.ID = keyToken.(string)
		results = append(results, result)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*r = results
	return nil
}

// UnmarshalJSON accepts both the `{"name": "value"}` object form and the
// `[{"name": "...", "value": "..."}]` list form
func (o *Outputs) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*o = nil
		return nil
	}

	if trimmed[0] == '[' {
		var list []struct {
			Name  string          `json:"name"`
			Value json.RawMessage `json:"value"`
		}
		err := json.Unmarshal(trimmed, &list)
		if err != nil {
			return err
		}
		outputs := Outputs{}
		for _, item := range list {
			outputs = append(outputs, Output{
				Name:  item.Name,
				Value: outputValue(item.Value),
			})
		}
		*o = outputs
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("outputs must be an object or a list, got %v", tok)
	}

	outputs := Outputs{}
	for dec.More() {
		keyToken, err := dec.Token()
		if err != nil {
			return err
		}
		var raw json.RawMessage
		err = dec.Decode(&raw)
		if err != nil {
			return err
		}
		outputs = append(outputs, Output{
			Name:  keyToken.(string),
			Value: outputValue(raw),
		})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*o = outputs
	return nil
}

// outputValue renders strings as they are and any other JSON value as its source text
func outputValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
