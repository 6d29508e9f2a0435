package ai

import (
	"context"
	"errors"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

type fakeModel struct {
	reply   string
	err     error
	prompts []string
	options []*model.Options
}

func (f *fakeModel) Generate(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.prompts = append(f.prompts, in[len(in)-1].Content)
	f.options = append(f.options, model.GetCommonOptions(nil, opts...))
	if f.err != nil {
		return nil, f.err
	}
	return &schema.Message{Role: schema.Assistant, Content: f.reply}, nil
}

type memRecorder struct {
	records []Record
	err     error
}

func (m *memRecorder) Record(ctx context.Context, rec Record) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, rec)
	return nil
}

var errTransport = errors.New("connection reset by peer")
