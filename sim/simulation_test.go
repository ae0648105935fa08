package sim

import (
	"bytes"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

type namedHandler struct {
	*ComponentBase
}

func (namedHandler) Handle(Event) error { return nil }

var _ = Describe("Simulation", func() {
	var (
		mockCtrl *gomock.Controller
		engine   *MockEngine
		s        *Simulation
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = NewMockEngine(mockCtrl)
		s = NewSimulation()
		s.RegisterEngine(engine)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should register and look up components", func() {
		a := namedHandler{NewComponentBase("A")}
		b := namedHandler{NewComponentBase("B")}

		s.RegisterComponent(a)
		s.RegisterComponent(b)

		Expect(s.GetEngine()).To(BeIdenticalTo(engine))
		Expect(s.GetComponentByName("A")).To(Equal(a))
		Expect(s.GetComponentByName("B")).To(Equal(b))
		Expect(s.GetComponentByName("C")).To(BeNil())
		Expect(s.Components()).To(HaveLen(2))
	})

	It("should panic when registering a name twice", func() {
		s.RegisterComponent(namedHandler{NewComponentBase("A")})

		Expect(func() {
			s.RegisterComponent(namedHandler{NewComponentBase("A")})
		}).To(Panic())
	})

	It("should run the engine and finish", func() {
		run := engine.EXPECT().Run().Return(nil)
		engine.EXPECT().Finished().After(run)

		Expect(s.Run()).To(Succeed())
	})

	It("should run up to an end time and finish", func() {
		run := engine.EXPECT().RunUntil(VTimeInSec(4)).Return(nil)
		engine.EXPECT().Finished().After(run)

		Expect(s.RunUntil(4)).To(Succeed())
	})
})

var _ = Describe("ID Generator", func() {
	It("should keep the sequential generator when selected again", func() {
		first := GetIDGenerator().Generate()

		Expect(UseSequentialIDGenerator).NotTo(Panic())
		Expect(GetIDGenerator().Generate()).NotTo(Equal(first))
		Expect(UseParallelIDGenerator).To(Panic())
	})
})

var _ = Describe("Hooks", func() {
	It("should reject registering the same hook twice", func() {
		h := &HookableBase{}
		hook := NewEventLogger(log.New(&bytes.Buffer{}, "", 0))

		h.AcceptHook(hook)
		Expect(func() { h.AcceptHook(hook) }).To(Panic())
		Expect(h.NumHooks()).To(Equal(1))
	})

	It("should accept hook funcs", func() {
		h := &HookableBase{}
		called := 0
		h.AcceptHook(HookFunc(func(HookCtx) { called++ }))
		h.AcceptHook(HookFunc(func(HookCtx) { called++ }))

		h.InvokeHook(HookCtx{})
		Expect(called).To(Equal(2))
	})

	It("should log events before they are handled", func() {
		buf := &bytes.Buffer{}
		logger := NewEventLogger(log.New(buf, "", 0))
		comp := namedHandler{NewComponentBase("Lift")}
		evt := MakeTickEvent(comp, 1.5)

		logger.Func(HookCtx{Pos: HookPosAfterEvent, Item: evt})
		Expect(buf.String()).To(BeEmpty())

		logger.Func(HookCtx{Pos: HookPosBeforeEvent, Item: evt})
		Expect(buf.String()).To(Equal("1.5000000000, sim.TickEvent -> Lift\n"))
	})
})
