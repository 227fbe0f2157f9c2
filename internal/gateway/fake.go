package gateway

import "context"

// FakeSender is a test implementation of Sender that records every reply.
type FakeSender struct {
	Sent []Reply
	Err  error
}

func NewFakeSender() *FakeSender {
	return &FakeSender{}
}

func (s *FakeSender) Send(ctx context.Context, reply Reply) error {
	if s.Err != nil {
		return s.Err
	}
	s.Sent = append(s.Sent, reply)
	return nil
}

// Last returns the most recent reply, if any.
func (s *FakeSender) Last() (Reply, bool) {
	if len(s.Sent) == 0 {
		return Reply{}, false
	}
	return s.Sent[len(s.Sent)-1], true
}
