package aggregate

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/recsweep/recsweep/internal/records"
	"github.com/recsweep/recsweep/internal/source"
	"github.com/recsweep/recsweep/internal/zoom"
)

// DemoGenerator produces synthetic records without touching the provider
// API, so the whole pipeline can be exercised with no credentials. Output is
// deterministic for a given seed and request: the generator reseeds on every
// call, so repeating a search yields the same records.
type DemoGenerator struct {
	seed int64
}

// NewDemoGenerator creates a generator. A zero seed is replaced with a fixed
// default so demo output stays reproducible out of the box.
func NewDemoGenerator(seed int64) *DemoGenerator {
	if seed == 0 {
		seed = 20240101
	}
	return &DemoGenerator{seed: seed}
}

var demoPeople = []struct {
	name   string
	email  string
	number string
}{
	{"Ada Moreno", "ada.moreno@example.com", "+14155550101"},
	{"Bo Lindqvist", "bo.lindqvist@example.com", "+14155550102"},
	{"Carmen Diaz", "carmen.diaz@example.com", "+14155550103"},
	{"Dev Patel", "dev.patel@example.com", "+14155550104"},
	{"Elif Yilmaz", "elif.yilmaz@example.com", "+14155550105"},
	{"Farid Khan", "farid.khan@example.com", "+14155550106"},
}

var demoTopics = []string{
	"Weekly sync",
	"Quarterly business review",
	"Incident retro",
	"Customer onboarding",
	"Design walkthrough",
	"1:1",
}

var demoQueues = []struct {
	id   string
	name string
}{
	{"q-100", "Billing"},
	{"q-200", "Technical Support"},
	{"q-300", "Renewals"},
}

// Generate builds a synthetic result for one search request. Records are
// spread evenly across the date range and honor the meetings narrowing
// filters, matching the contract of the real adapters.
func (g *DemoGenerator) Generate(p Params) *source.Result {
	rng := rand.New(rand.NewSource(g.seed + int64(len(p.Source))))

	span := p.To.Sub(p.From)
	if span <= 0 {
		span = 24 * time.Hour
	}
	days := int(span/(24*time.Hour)) + 1
	count := days * 3
	if count > 120 {
		count = 120
	}

	var recs []records.UnifiedRecording
	for i := 0; i < count; i++ {
		start := p.From.Add(time.Duration(rng.Int63n(int64(span))))
		switch p.Source {
		case records.SourcePhone:
			recs = append(recs, g.phoneRecord(rng, i, start))
		case records.SourceMeetings:
			recs = append(recs, g.meetingRecord(rng, i, start))
		case records.SourceContactCenter:
			recs = append(recs, g.ccRecord(rng, i, start))
		}
	}

	serverTotal := len(recs)
	if p.Source == records.SourceMeetings {
		recs = filterDemoMeetings(recs, p)
	}
	for i := range recs {
		recs[i].Index = i
	}
	return &source.Result{
		Records:      recs,
		TotalRecords: len(recs),
		ServerTotal:  serverTotal,
	}
}

func (g *DemoGenerator) phoneRecord(rng *rand.Rand, i int, start time.Time) records.UnifiedRecording {
	caller := demoPeople[rng.Intn(len(demoPeople))]
	callee := demoPeople[rng.Intn(len(demoPeople))]
	return records.UnifiedRecording{
		Source:    records.SourcePhone,
		ID:        fmt.Sprintf("demo-phone-%04d", i),
		StartTime: start,
		Duration:  30 + rng.Intn(1800),
		Caller:    records.Party{Name: caller.name, Number: caller.number},
		Callee:    records.Party{Name: callee.name, Number: callee.number},
		Owner:     records.Owner{Type: "user", ID: fmt.Sprintf("demo-user-%d", rng.Intn(len(demoPeople))), Name: caller.name},
	}
}

func (g *DemoGenerator) meetingRecord(rng *rand.Rand, i int, start time.Time) records.UnifiedRecording {
	host := demoPeople[rng.Intn(len(demoPeople))]
	topic := demoTopics[rng.Intn(len(demoTopics))]
	size := int64(1_000_000 + rng.Intn(500_000_000))
	files := []records.MeetingFile{
		{ID: fmt.Sprintf("demo-file-%04d-1", i), FileType: "MP4", FileExtension: "MP4", FileSize: size},
		{ID: fmt.Sprintf("demo-file-%04d-2", i), FileType: "M4A", FileExtension: "M4A", FileSize: size / 10},
	}
	return records.UnifiedRecording{
		Source:               records.SourceMeetings,
		ID:                   fmt.Sprintf("demo-meeting-%04d", i),
		StartTime:            start,
		Duration:             (5 + rng.Intn(55)) * 60,
		Owner:                records.Owner{Type: "user", ID: fmt.Sprintf("demo-user-%d", rng.Intn(len(demoPeople))), Name: host.name},
		Topic:                topic,
		HostID:               fmt.Sprintf("demo-host-%d", rng.Intn(len(demoPeople))),
		MeetingUUID:          fmt.Sprintf("demo-uuid-%04d==", i),
		OwnerEmail:           host.email,
		Files:                files,
		PrimaryFileType:      "MP4",
		PrimaryFileExtension: "MP4",
		FileTypes:            []string{"MP4", "M4A"},
		TotalBytes:           size + size/10,
		AutoDelete:           rng.Intn(3) == 0,
	}
}

func (g *DemoGenerator) ccRecord(rng *rand.Rand, i int, start time.Time) records.UnifiedRecording {
	consumer := demoPeople[rng.Intn(len(demoPeople))]
	agent := demoPeople[rng.Intn(len(demoPeople))]
	queue := demoQueues[rng.Intn(len(demoQueues))]
	return records.UnifiedRecording{
		Source:    records.SourceContactCenter,
		ID:        fmt.Sprintf("demo-cc-%04d", i),
		StartTime: start,
		Duration:  60 + rng.Intn(3600),
		Caller:    records.Party{Name: consumer.name, Number: consumer.number},
		Callee:    records.Party{Name: agent.name},
		Owner:     records.Owner{Type: "queue", ID: queue.id, Name: queue.name},
		QueueID:   queue.id,
		QueueName: queue.name,
		AgentName: agent.name,
		AgentMail: agent.email,
	}
}

func filterDemoMeetings(recs []records.UnifiedRecording, p Params) []records.UnifiedRecording {
	out := recs[:0]
	for _, r := range recs {
		if p.OwnerEmail != "" && !records.ContainsFold(r.OwnerEmail, p.OwnerEmail) {
			continue
		}
		if p.Topic != "" && !records.ContainsFold(r.Topic, p.Topic) {
			continue
		}
		if p.AutoDelete != nil && r.AutoDelete != *p.AutoDelete {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Users returns the fixed synthetic user roster.
func (g *DemoGenerator) Users() []zoom.User {
	out := make([]zoom.User, 0, len(demoPeople))
	for i, p := range demoPeople {
		out = append(out, zoom.User{
			ID:          fmt.Sprintf("demo-user-%d", i),
			Email:       p.email,
			DisplayName: p.name,
			Status:      "active",
		})
	}
	return out
}

// UserCounts returns synthetic per-user counts over the range.
func (g *DemoGenerator) UserCounts(from, to time.Time) *source.CountsResult {
	res := g.Generate(Params{Source: records.SourceMeetings, From: from, To: to})
	byUser := map[string]int{}
	for _, r := range res.Records {
		byUser[r.OwnerEmail]++
	}
	counts := &source.CountsResult{}
	for i, p := range demoPeople {
		counts.Counts = append(counts.Counts, source.UserCount{
			UserID:   fmt.Sprintf("demo-user-%d", i),
			Email:    p.email,
			Meetings: byUser[p.email],
		})
	}
	return counts
}
