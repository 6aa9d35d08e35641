// Package probe checks that a running rating server answers its public
// endpoints with the expected shapes. It walks a fixed sequence of calls and
// stops at the first failure.
package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const DefaultBaseURL = "http://localhost:8001/api"

type FailureKind string

const (
	FailureConnectivity FailureKind = "connectivity"
	FailureStatus       FailureKind = "status"
	FailureMalformed    FailureKind = "malformed response"
)

// StepError describes why a step failed.
type StepError struct {
	Step   string
	Kind   FailureKind
	Status int
	Err    error
}

func (e *StepError) Error() string {
	if e.Kind == FailureStatus {
		return fmt.Sprintf("%s: unexpected status %d", e.Step, e.Status)
	}
	return fmt.Sprintf("%s: %s: %v", e.Step, e.Kind, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

var ErrMissingField = errors.New("missing field")

type StepResult struct {
	Name     string
	Passed   bool
	Warnings []string
	Err      error
}

type Report struct {
	Steps []StepResult
	// CarID is the car returned by the first random draw and voted on.
	CarID string
	// NextCarID is the car returned by the second random draw.
	NextCarID string
}

func (r *Report) Passed() bool {
	if len(r.Steps) != stepCount {
		return false
	}
	for _, s := range r.Steps {
		if !s.Passed {
			return false
		}
	}
	return true
}

type Probe struct {
	baseURL string
	client  *http.Client
	out     io.Writer
}

func New(baseURL string, client *http.Client, out io.Writer) *Probe {
	if client == nil {
		client = http.DefaultClient
	}
	if out == nil {
		out = io.Discard
	}
	return &Probe{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		out:     out,
	}
}

type car struct {
	ID            *string  `json:"id"`
	Make          *string  `json:"make"`
	Model         *string  `json:"model"`
	Year          *int     `json:"year"`
	HotVotes      *int64   `json:"hot_votes"`
	NotVotes      *int64   `json:"not_votes"`
	HotPercentage *float64 `json:"hot_percentage"`
}

func (c *car) requireIdentity() error {
	switch {
	case c.ID == nil || *c.ID == "":
		return fmt.Errorf("%w: id", ErrMissingField)
	case c.Make == nil:
		return fmt.Errorf("%w: make", ErrMissingField)
	case c.Model == nil:
		return fmt.Errorf("%w: model", ErrMissingField)
	case c.Year == nil:
		return fmt.Errorf("%w: year", ErrMissingField)
	}
	return nil
}

func (c *car) requireScore() error {
	switch {
	case c.HotVotes == nil:
		return fmt.Errorf("%w: car.hot_votes", ErrMissingField)
	case c.NotVotes == nil:
		return fmt.Errorf("%w: car.not_votes", ErrMissingField)
	case c.HotPercentage == nil:
		return fmt.Errorf("%w: car.hot_percentage", ErrMissingField)
	}
	return nil
}

func (c *car) String() string {
	return fmt.Sprintf("%d %s %s", *c.Year, *c.Make, *c.Model)
}

type voteResponse struct {
	Car *car `json:"car"`
}

const stepCount = 4

// Run executes the four steps in order. It returns the report and, when a
// step failed, the *StepError that stopped the run.
func (p *Probe) Run(ctx context.Context) (*Report, error) {
	report := &Report{}
	p.printf("Testing Car Rating API at %s\n", p.baseURL)
	p.printf("%s\n", strings.Repeat("=", 40))

	// 1. draw a car
	first, err := p.randomCar(ctx, "GET /cars/random")
	if !p.record(report, "GET /cars/random", err, nil) {
		return report, err
	}
	report.CarID = *first.ID
	p.printf("  PASS got random car: %s (%s)\n", first, *first.ID)

	// 2. vote hot; counters only have to move forward from the previous step
	hot, err := p.vote(ctx, "POST /cars/vote (hot)", report.CarID, "hot")
	var warnings []string
	if err == nil && first.HotVotes != nil && *hot.HotVotes <= *first.HotVotes {
		warnings = append(warnings, fmt.Sprintf("hot vote not counted: %d hot before, %d after", *first.HotVotes, *hot.HotVotes))
	}
	if !p.record(report, "POST /cars/vote (hot)", err, warnings) {
		return report, err
	}
	p.printScore("hot", hot)

	// 3. vote not on the same car
	not, err := p.vote(ctx, "POST /cars/vote (not)", report.CarID, "not")
	warnings = nil
	if err == nil && (*not.NotVotes <= *hot.NotVotes || *not.HotVotes < *hot.HotVotes) {
		warnings = append(warnings, fmt.Sprintf("counters did not keep both votes: %d hot, %d not after %d hot, %d not", *not.HotVotes, *not.NotVotes, *hot.HotVotes, *hot.NotVotes))
	}
	if !p.record(report, "POST /cars/vote (not)", err, warnings) {
		return report, err
	}
	p.printScore("not", not)

	// 4. draw again; the same car twice is possible by chance
	second, err := p.randomCar(ctx, "GET /cars/random (again)")
	warnings = nil
	if err == nil && *second.ID == report.CarID {
		warnings = append(warnings, "same car returned twice (could be random chance)")
	}
	if !p.record(report, "GET /cars/random (again)", err, warnings) {
		return report, err
	}
	report.NextCarID = *second.ID
	p.printf("  PASS got another car: %s\n", second)
	if *second.ID != report.CarID {
		p.printf("  PASS different car returned\n")
	}

	p.printf("\nAPI testing complete\n")
	return report, nil
}

func (p *Probe) record(report *Report, name string, err error, warnings []string) bool {
	p.printf("\n[%d/%d] %s\n", len(report.Steps)+1, stepCount, name)
	report.Steps = append(report.Steps, StepResult{
		Name:     name,
		Passed:   err == nil,
		Warnings: warnings,
		Err:      err,
	})
	if err != nil {
		p.printf("  FAIL %v\n", err)
		return false
	}
	for _, w := range warnings {
		p.printf("  WARN %s\n", w)
	}
	return true
}

func (p *Probe) printScore(voteType string, c *car) {
	p.printf("  PASS %s vote recorded\n", voteType)
	p.printf("       score: %.1f%% hot\n", *c.HotPercentage)
	p.printf("       votes: %d hot, %d not\n", *c.HotVotes, *c.NotVotes)
}

func (p *Probe) randomCar(ctx context.Context, step string) (*car, error) {
	var c car
	if err := p.do(ctx, step, http.MethodGet, "/cars/random", nil, &c); err != nil {
		return nil, err
	}
	if err := c.requireIdentity(); err != nil {
		return nil, &StepError{Step: step, Kind: FailureMalformed, Err: err}
	}
	return &c, nil
}

func (p *Probe) vote(ctx context.Context, step, carID, voteType string) (*car, error) {
	body := map[string]string{"car_id": carID, "vote_type": voteType}

	var resp voteResponse
	if err := p.do(ctx, step, http.MethodPost, "/cars/vote", body, &resp); err != nil {
		return nil, err
	}
	if resp.Car == nil {
		return nil, &StepError{Step: step, Kind: FailureMalformed, Err: fmt.Errorf("%w: car", ErrMissingField)}
	}
	if err := resp.Car.requireScore(); err != nil {
		return nil, &StepError{Step: step, Kind: FailureMalformed, Err: err}
	}
	return resp.Car, nil
}

func (p *Probe) do(ctx context.Context, step, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return &StepError{Step: step, Kind: FailureMalformed, Err: err}
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, body)
	if err != nil {
		return &StepError{Step: step, Kind: FailureConnectivity, Err: err}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return &StepError{Step: step, Kind: FailureConnectivity, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StepError{Step: step, Kind: FailureStatus, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &StepError{Step: step, Kind: FailureMalformed, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

func (p *Probe) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}
