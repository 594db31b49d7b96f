// Package ipc serves keyword analyses over stdin/stdout as a stream of
// MessagePack frames, for embedding the analyzer in a desktop shell.
package ipc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/keyword-scout/internal/observability"
	"github.com/jonathan/keyword-scout/internal/pipeline"
	"github.com/jonathan/keyword-scout/internal/types"
)

// StatusReady is sent once before any response.
const StatusReady = "ready"

// Request asks for one analysis. ID is echoed in the response.
type Request struct {
	ID      string `msgpack:"id"`
	Keyword string `msgpack:"k"`
	Count   int    `msgpack:"n,omitempty"`
}

// Response carries the report for the request with the same ID.
type Response struct {
	ID      string        `msgpack:"id"`
	Report  string        `msgpack:"r"`
	Outcome types.Outcome `msgpack:"o"`
	Error   string        `msgpack:"e,omitempty"`
}

// ReadyFrame announces that the server accepts requests.
type ReadyFrame struct {
	Status string `msgpack:"status"`
}

// Analyzer runs one analysis and never fails.
type Analyzer interface {
	SafeRun(ctx context.Context, req types.AnalyzeRequest, onProgress pipeline.ProgressCallback) *types.AnalysisResult
}

// Server reads requests from r and writes responses to w. Requests are
// handled concurrently, so responses may arrive out of order.
type Server struct {
	analyzer Analyzer
	dec      *msgpack.Decoder
	enc      *msgpack.Encoder
	writeMu  sync.Mutex
	logger   *log.Logger
}

// NewServer creates a Server over the given streams.
func NewServer(analyzer Analyzer, r io.Reader, w io.Writer, logger *log.Logger) *Server {
	return &Server{
		analyzer: analyzer,
		dec:      msgpack.NewDecoder(r),
		enc:      msgpack.NewEncoder(w),
		logger:   observability.OrDiscard(logger).WithPrefix("ipc"),
	}
}

// frame is one decoded request or the error that ended the input.
type frame struct {
	req Request
	err error
}

// Serve sends the ready frame and handles requests until the input ends or
// ctx is done. In-flight requests are always answered before it returns.
// Cancelling ctx returns promptly even while the reader is blocked.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Debug("starting IPC server")
	if err := s.send(ReadyFrame{Status: StatusReady}); err != nil {
		return fmt.Errorf("failed to send ready frame: %w", err)
	}

	var g errgroup.Group
	defer func() { _ = g.Wait() }()

	done := make(chan struct{})
	defer close(done)
	frames := s.readFrames(done)

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("context done, stopping")
			return nil
		case f := <-frames:
			if f.err != nil {
				if errors.Is(f.err, io.EOF) {
					s.logger.Debug("input closed")
					return nil
				}
				s.logger.Error("failed to decode request", "err", f.err)
				_ = s.send(Response{Error: "invalid request frame"})
				return fmt.Errorf("failed to decode request: %w", f.err)
			}

			req := f.req
			g.Go(func() error {
				s.handle(ctx, req)
				return nil
			})
		}
	}
}

// readFrames decodes requests on its own goroutine until a decode error or
// until done is closed. A Decode blocked on input outlives Serve until the
// input yields or closes.
func (s *Server) readFrames(done <-chan struct{}) <-chan frame {
	frames := make(chan frame)
	go func() {
		for {
			var req Request
			err := s.dec.Decode(&req)
			select {
			case frames <- frame{req: req, err: err}:
			case <-done:
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return frames
}

func (s *Server) handle(ctx context.Context, req Request) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("request panicked", "id", req.ID, "panic", rec, "stack", string(debug.Stack()))
			_ = s.send(Response{ID: req.ID, Report: pipeline.MsgGenericFailure, Outcome: types.OutcomeInternalError})
		}
	}()

	analyzeReq := types.AnalyzeRequest{Keyword: req.Keyword, Count: req.Count}
	if err := analyzeReq.Validate(); err != nil {
		s.logger.Warn("rejected request", "id", req.ID, "err", err)
		_ = s.send(Response{ID: req.ID, Error: err.Error()})
		return
	}

	s.logger.Info("analyzing", "id", req.ID, "keyword", req.Keyword, "count", req.Count)
	result := s.analyzer.SafeRun(ctx, analyzeReq, nil)
	if err := s.send(Response{ID: req.ID, Report: result.Report, Outcome: result.Outcome}); err != nil {
		s.logger.Error("failed to send response", "id", req.ID, "err", err)
	}
}

func (s *Server) send(v any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.enc.Encode(v)
}
