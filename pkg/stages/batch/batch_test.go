package batch

import (
	"context"
	"errors"
	"testing"

	"github.com/user/yuvsnap/pkg/converter"
	"github.com/user/yuvsnap/pkg/mocks"
	"github.com/user/yuvsnap/pkg/pipeline"
	"github.com/user/yuvsnap/pkg/ports"
	"github.com/user/yuvsnap/pkg/yuv"
)

// grey returns a 4x4 I420 frame with every luma sample set to y.
func grey(y byte) *mocks.FrameBuffer {
	luma := make([]byte, 16)
	for i := range luma {
		luma[i] = y
	}
	return &mocks.FrameBuffer{
		Desc: yuv.Descriptor{Width: 4, Height: 4, Format: yuv.FormatI420, Range: yuv.RangeFull},
		Planes: []yuv.Plane{
			{Data: luma, Stride: 4},
			{Data: []byte{128, 128, 128, 128}, Stride: 2},
			{Data: []byte{128, 128, 128, 128}, Stride: 2},
		},
	}
}

func TestStage_Execute(t *testing.T) {
	sink := mocks.NewDebugSink(true)
	stage := NewStage(sink, mocks.NewLogger(), 3)

	frames := make([]ports.FrameBuffer, 10)
	for i := range frames {
		frames[i] = grey(byte(i * 20))
	}

	result, err := stage.Execute(context.Background(), pipeline.BatchInput{Frames: frames, FirstIndex: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Frames) != 10 || len(result.Dropped) != 0 {
		t.Fatalf("expected 10 frames and no drops, got %d/%d", len(result.Frames), len(result.Dropped))
	}
	for i, f := range result.Frames {
		if f.Index != 100+i {
			t.Errorf("frame %d: index = %d", i, f.Index)
		}
		if got := f.Image.RGBAAt(0, 0).R; got != byte(i*20) {
			t.Errorf("frame %d: R = %d, want %d", i, got, i*20)
		}
	}
	if sink.ConvertedCount() != 10 {
		t.Errorf("expected 10 debug frames, got %d", sink.ConvertedCount())
	}
	for i, f := range frames {
		if fb := f.(*mocks.FrameBuffer); fb.Locked() {
			t.Errorf("frame %d left locked", i)
		}
	}
}

func TestStage_DropsFailedFrames(t *testing.T) {
	log := mocks.NewLogger()
	stage := NewStage(mocks.NewDebugSink(false), log, 2)

	broken := grey(0)
	broken.LockFunc = func() ([]yuv.Plane, error) { return nil, errors.New("device lost") }

	frames := []ports.FrameBuffer{
		grey(10),
		nil,
		broken,
		&mocks.FrameBuffer{Desc: yuv.Descriptor{Width: 0, Height: 4, Format: yuv.FormatI420}},
		grey(50),
	}

	result, err := stage.Execute(context.Background(), pipeline.BatchInput{Frames: frames})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Frames) != 2 || result.Frames[0].Index != 0 || result.Frames[1].Index != 4 {
		t.Fatalf("unexpected surviving frames: %+v", result.Frames)
	}
	if len(result.Dropped) != 3 {
		t.Fatalf("expected 3 dropped frames, got %d", len(result.Dropped))
	}

	wantKinds := []error{converter.ErrNullBuffer, converter.ErrLockFailed, converter.ErrEmptyDimensions}
	for i, d := range result.Dropped {
		if d.Index != i+1 {
			t.Errorf("dropped %d: index = %d", i, d.Index)
		}
		if !errors.Is(d.Err, wantKinds[i]) {
			t.Errorf("dropped %d: err = %v, want %v", i, d.Err, wantKinds[i])
		}
	}
	if n := log.Count(ports.LevelWarn, "Dropped frame"); n != 3 {
		t.Errorf("expected 3 drop warnings, got %d", n)
	}
}

func TestStage_Execute_EmptyFrames(t *testing.T) {
	stage := NewStage(mocks.NewDebugSink(false), mocks.NewLogger(), 0)

	result, err := stage.Execute(context.Background(), pipeline.BatchInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Frames == nil || len(result.Frames) != 0 {
		t.Errorf("expected empty non-nil frames, got %v", result.Frames)
	}
}

func TestStage_Execute_Cancelled(t *testing.T) {
	stage := NewStage(mocks.NewDebugSink(false), mocks.NewLogger(), 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	frames := []ports.FrameBuffer{grey(1), grey(2), grey(3)}
	result, err := stage.Execute(ctx, pipeline.BatchInput{Frames: frames})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(result.Frames) != 0 {
		t.Errorf("expected no frames after cancellation, got %d", len(result.Frames))
	}
}
