package sim

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

type endRecorder struct {
	calledAt []VTimeInSec
}

func (r *endRecorder) Handle(now VTimeInSec) {
	r.calledAt = append(r.calledAt, now)
}

var _ = Describe("SerialEngine", func() {
	var (
		mockCtrl *gomock.Controller
		engine   *SerialEngine
	)

	mockEvent := func(t VTimeInSec, handler Handler) *MockEvent {
		evt := NewMockEvent(mockCtrl)
		evt.EXPECT().Time().Return(t).AnyTimes()
		evt.EXPECT().Handler().Return(handler).AnyTimes()

		return evt
	}

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = NewSerialEngine()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should schedule events", func() {
		handler1 := NewMockHandler(mockCtrl)
		handler2 := NewMockHandler(mockCtrl)
		evt1 := mockEvent(4.0, handler1)
		evt2 := mockEvent(2.0, handler2)
		evt3 := mockEvent(3.0, handler1)
		evt4 := mockEvent(5.0, handler1)

		handleEvt2 := handler2.EXPECT().Handle(evt2).
			DoAndReturn(func(Event) error {
				engine.Schedule(evt3)
				engine.Schedule(evt4)
				return nil
			})
		handleEvt3 := handler1.EXPECT().Handle(evt3).
			Return(nil).After(handleEvt2)
		handleEvt1 := handler1.EXPECT().Handle(evt1).
			Return(nil).After(handleEvt3)
		handler1.EXPECT().Handle(evt4).Return(nil).After(handleEvt1)

		engine.Schedule(evt1)
		engine.Schedule(evt2)

		Expect(engine.Run()).To(Succeed())
		Expect(engine.CurrentTime()).To(Equal(VTimeInSec(5.0)))
	})

	It("should handle same-time events in scheduling order", func() {
		handler1 := NewMockHandler(mockCtrl)
		handler2 := NewMockHandler(mockCtrl)
		handler3 := NewMockHandler(mockCtrl)
		evt1 := mockEvent(2.0, handler1)
		evt2 := mockEvent(2.0, handler2)
		evt3 := mockEvent(2.0, handler3)

		handleEvt1 := handler1.EXPECT().Handle(evt1).Return(nil)
		handleEvt2 := handler2.EXPECT().Handle(evt2).
			Return(nil).After(handleEvt1)
		handler3.EXPECT().Handle(evt3).Return(nil).After(handleEvt2)

		engine.Schedule(evt1)
		engine.Schedule(evt2)
		engine.Schedule(evt3)

		Expect(engine.Run()).To(Succeed())
	})

	It("should stop at the end time and keep later events", func() {
		handler := NewMockHandler(mockCtrl)
		evt1 := mockEvent(1.0, handler)
		evt2 := mockEvent(2.0, handler)
		evt3 := mockEvent(3.0, handler)

		handleEvt1 := handler.EXPECT().Handle(evt1).Return(nil)
		handleEvt2 := handler.EXPECT().Handle(evt2).
			Return(nil).After(handleEvt1)

		engine.Schedule(evt1)
		engine.Schedule(evt2)
		engine.Schedule(evt3)

		Expect(engine.RunUntil(2.5)).To(Succeed())
		Expect(engine.CurrentTime()).To(Equal(VTimeInSec(2.5)))

		handler.EXPECT().Handle(evt3).Return(nil).After(handleEvt2)
		Expect(engine.Run()).To(Succeed())
		Expect(engine.CurrentTime()).To(Equal(VTimeInSec(3.0)))
	})

	It("should keep the clock of the last event when the queue drains", func() {
		handler := NewMockHandler(mockCtrl)
		evt := mockEvent(1.0, handler)
		handler.EXPECT().Handle(evt).Return(nil)

		engine.Schedule(evt)

		Expect(engine.RunUntil(5)).To(Succeed())
		Expect(engine.CurrentTime()).To(Equal(VTimeInSec(1.0)))
	})

	It("should panic when running until a past time", func() {
		handler := NewMockHandler(mockCtrl)
		evt := mockEvent(2.0, handler)
		handler.EXPECT().Handle(evt).Return(nil)

		engine.Schedule(evt)
		Expect(engine.Run()).To(Succeed())

		Expect(func() { _ = engine.RunUntil(1) }).To(Panic())
	})

	It("should invoke hooks around each event", func() {
		handler := NewMockHandler(mockCtrl)
		hook := NewMockHook(mockCtrl)
		evt := mockEvent(1.0, handler)
		engine.AcceptHook(hook)

		before := hook.EXPECT().Func(gomock.Any()).Do(func(ctx HookCtx) {
			Expect(ctx.Pos).To(Equal(HookPosBeforeEvent))
			Expect(ctx.Item).To(BeIdenticalTo(evt))
		})
		handle := handler.EXPECT().Handle(evt).Return(nil).After(before)
		hook.EXPECT().Func(gomock.Any()).Do(func(ctx HookCtx) {
			Expect(ctx.Pos).To(Equal(HookPosAfterEvent))
		}).After(handle)

		engine.Schedule(evt)
		Expect(engine.Run()).To(Succeed())
		Expect(engine.NumHooks()).To(Equal(1))
	})

	It("should stop on handler error", func() {
		handler := NewMockHandler(mockCtrl)
		evt1 := mockEvent(1.0, handler)
		evt2 := mockEvent(2.0, handler)
		handlerErr := errors.New("handler failed")

		handler.EXPECT().Handle(evt1).Return(handlerErr)

		engine.Schedule(evt1)
		engine.Schedule(evt2)

		Expect(engine.Run()).To(MatchError(handlerErr))
		Expect(engine.CurrentTime()).To(Equal(VTimeInSec(1.0)))
	})

	It("should panic when scheduling in the past", func() {
		handler := NewMockHandler(mockCtrl)
		evt1 := mockEvent(2.0, handler)
		evt2 := mockEvent(1.0, handler)

		handler.EXPECT().Handle(evt1).DoAndReturn(func(Event) error {
			Expect(func() { engine.Schedule(evt2) }).To(Panic())
			return nil
		})

		engine.Schedule(evt1)
		Expect(engine.Run()).To(Succeed())
	})

	It("should call simulation end handlers when finished", func() {
		handler := NewMockHandler(mockCtrl)
		evt := mockEvent(3.0, handler)
		handler.EXPECT().Handle(evt).Return(nil)
		recorder := &endRecorder{}

		var order []string

		engine.RegisterSimulationEndHandler(recorder)
		engine.RegisterSimulationEndHandler(SimulationEndFunc(
			func(now VTimeInSec) {
				Expect(recorder.calledAt).To(HaveLen(1))
				order = append(order, "func")
			}))
		engine.Schedule(evt)
		Expect(engine.Run()).To(Succeed())
		engine.Finished()

		Expect(recorder.calledAt).To(Equal([]VTimeInSec{3.0}))
		Expect(order).To(Equal([]string{"func"}))
	})

	It("should tolerate repeated pause and continue", func() {
		engine.Pause()
		engine.Pause()
		engine.Continue()
		engine.Continue()

		handler := NewMockHandler(mockCtrl)
		evt := mockEvent(1.0, handler)
		handler.EXPECT().Handle(evt).Return(nil)
		engine.Schedule(evt)

		Expect(engine.Run()).To(Succeed())
	})
})
