package jobs

import (
	"encoding/json"
	"errors"
	"os"
	"time"
)

// Dismissed is the list of postings the user does not want to see again.
type Dismissed struct {
	Items []*DismissedPosting
}

type DismissedPosting struct {
	ID          string
	Title       string
	Company     string
	DismissedAt time.Time
}

// ToDismissed converts the postings with the given ids into dismissed entries.
func (j *Jobs) ToDismissed(ids []string) *Dismissed {
	dismissed := &Dismissed{}
	now := time.Now().UTC()
	for _, id := range ids {
		posting := j.FindByID(id)
		if posting == nil {
			continue
		}
		dismissed.Items = append(dismissed.Items, &DismissedPosting{
			ID:          posting.ID,
			Title:       posting.Title,
			Company:     posting.Company,
			DismissedAt: now,
		})
	}
	return dismissed
}

// LoadDismissed reads a dismissed postings file. A missing or empty file is an empty list.
func LoadDismissed(path string) (*Dismissed, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Dismissed{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &Dismissed{}, nil
	}

	var dismissed Dismissed
	if err := json.NewDecoder(file).Decode(&dismissed); err != nil {
		return nil, err
	}
	return &dismissed, nil
}

func (d *Dismissed) Append(s *Dismissed) {
	d.Items = append(d.Items, s.Items...)
}

func (d *Dismissed) IDs() []string {
	ids := make([]string, 0, len(d.Items))
	for _, posting := range d.Items {
		ids = append(ids, posting.ID)
	}
	return ids
}

func (d *Dismissed) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
