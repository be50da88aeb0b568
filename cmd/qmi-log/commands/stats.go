package commands

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/freedesktop/libqmi/pkg/log"
)

// Stats holds aggregate statistics about a capture.
type Stats struct {
	TotalEvents       int
	EventsByCategory  map[log.Category]int
	EventsByDirection map[log.Direction]int
	Clients           map[ClientKey]*ClientStats
	Aborts            int
	FailedAborts      int
	Errors            int
	Start, End        time.Time
}

// ClientKey identifies a QMI client in a capture.
type ClientKey struct {
	Service  string
	ClientID uint8
}

// ClientStats holds per-client counters.
type ClientStats struct {
	Requests    int
	Responses   int
	Indications int
	RoundTrip   time.Duration
	roundTrips  int
}

// AverageRoundTrip returns the mean request round trip, or zero.
func (c *ClientStats) AverageRoundTrip() time.Duration {
	if c.roundTrips == 0 {
		return 0
	}
	return c.RoundTrip / time.Duration(c.roundTrips)
}

// CollectStats reads the whole capture at path.
func CollectStats(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory:  make(map[log.Category]int),
		EventsByDirection: make(map[log.Direction]int),
		Clients:           make(map[ClientKey]*ClientStats),
	}

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return stats, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByCategory[event.Category]++
	s.EventsByDirection[event.Direction]++

	if s.Start.IsZero() || event.Timestamp.Before(s.Start) {
		s.Start = event.Timestamp
	}
	if event.Timestamp.After(s.End) {
		s.End = event.Timestamp
	}

	switch {
	case event.Message != nil:
		key := ClientKey{event.Service, event.ClientID}
		cs, ok := s.Clients[key]
		if !ok {
			cs = &ClientStats{}
			s.Clients[key] = cs
		}
		switch event.Message.Type {
		case log.MessageTypeRequest:
			cs.Requests++
		case log.MessageTypeResponse:
			cs.Responses++
			if event.Message.RoundTrip != nil {
				cs.RoundTrip += *event.Message.RoundTrip
				cs.roundTrips++
			}
		case log.MessageTypeIndication:
			cs.Indications++
		}
	case event.Abort != nil:
		s.Aborts++
		if event.Abort.Result != "" {
			s.FailedAborts++
		}
	case event.Error != nil:
		s.Errors++
	}
}

// RunStats prints statistics about the capture at path.
func RunStats(path string, w io.Writer) error {
	stats, err := CollectStats(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, s *Stats) {
	fmt.Fprintln(w, "=== QMI Protocol Log Statistics ===")
	fmt.Fprintln(w)

	if s.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n", s.Start.Format(time.RFC3339), s.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", s.End.Sub(s.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", s.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryMessage, log.CategoryAbort, log.CategoryError} {
		if n := s.EventsByCategory[cat]; n > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", n)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Direction:")
	for _, dir := range []log.Direction{log.DirectionIn, log.DirectionOut} {
		if n := s.EventsByDirection[dir]; n > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", dir.String()+":", n)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Clients: %d\n", len(s.Clients))
	keys := make([]ClientKey, 0, len(s.Clients))
	for k := range s.Clients {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b ClientKey) int {
		return cmp.Or(cmp.Compare(a.Service, b.Service), cmp.Compare(a.ClientID, b.ClientID))
	})
	for _, k := range keys {
		cs := s.Clients[k]
		fmt.Fprintf(w, "  %s/%d: %d requests, %d responses, %d indications",
			k.Service, k.ClientID, cs.Requests, cs.Responses, cs.Indications)
		if avg := cs.AverageRoundTrip(); avg > 0 {
			fmt.Fprintf(w, ", avg round trip %s", formatDuration(avg))
		}
		fmt.Fprintln(w)
	}

	if s.Aborts > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Aborts: %d (%d failed)\n", s.Aborts, s.FailedAborts)
	}
	if s.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", s.Errors)
	}
}
