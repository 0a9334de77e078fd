package generator

import (
	"fmt"
	"time"

	"github.com/username/apprentice-calendar/internal/config"
	"github.com/username/apprentice-calendar/internal/curriculum"
	"github.com/username/apprentice-calendar/pkg/dateutil"
)

// theoryPicker chooses the subject of each regular theory day. Calls
// arrive in ascending date order.
type theoryPicker interface {
	next(date time.Time) (subject, description string)
}

// rotationPicker cycles a fixed subject list by ISO week number
type rotationPicker struct {
	subjects []string
}

func (p *rotationPicker) next(date time.Time) (string, string) {
	if len(p.subjects) == 0 {
		return "", TheoryLabel
	}
	_, week := dateutil.ISOWeek(date)
	return p.subjects[week%len(p.subjects)], TheoryLabel
}

type meeting struct {
	subject   string
	remaining int
}

// meetingCountPicker walks the cohort's subjects in track order, holding
// each one for its meeting count. When the queue runs dry it hands over
// to the rotation.
type meetingCountPicker struct {
	queue    []meeting
	fallback *rotationPicker
}

func newMeetingCountPicker(tracks []curriculum.Track, fallback *rotationPicker) *meetingCountPicker {
	p := &meetingCountPicker{fallback: fallback}
	for _, t := range curriculum.Ordered(tracks) {
		for _, s := range t.Subjects {
			if s.MeetingCount <= 0 {
				continue
			}
			p.queue = append(p.queue, meeting{subject: s.Name, remaining: s.MeetingCount})
		}
	}
	return p
}

func (p *meetingCountPicker) next(date time.Time) (string, string) {
	if len(p.queue) == 0 {
		return p.fallback.next(date)
	}

	head := &p.queue[0]
	subject := head.subject
	head.remaining--
	if head.remaining == 0 {
		p.queue = p.queue[1:]
	}

	return subject, fmt.Sprintf("%s - %s", TheoryLabel, subject)
}

// remaining counts the meetings not yet scheduled
func (p *meetingCountPicker) remaining() int {
	total := 0
	for _, m := range p.queue {
		total += m.remaining
	}
	return total
}

func newTheoryPicker(policy config.PolicyConfig, tracks []curriculum.Track) theoryPicker {
	rotation := &rotationPicker{subjects: policy.RotationSubjects}
	if policy.TheoryStrategy == config.StrategyRotation {
		return rotation
	}
	return newMeetingCountPicker(tracks, rotation)
}
