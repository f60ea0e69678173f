package placement

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/ledger"
	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/model"
)

func lut(n int64) ledger.Resources { return ledger.Resources{"LUT": n} }

func comp(id string) model.Unit { return model.Unit{Kind: model.ComponentUnit, ID: id} }

func group(id string) model.Unit { return model.Unit{Kind: model.GroupUnit, ID: id} }

var _ = Describe("Engine", func() {
	var (
		m      *model.Model
		engine *Engine
	)

	BeforeEach(func() {
		m = model.New()
		engine = MakeBuilder().Build()
	})

	Context("two boards joined by one link", func() {
		BeforeEach(func() {
			Expect(m.AddFPGA("F1", "Board 1", "virtex5", lut(100))).To(Succeed())
			Expect(m.AddFPGA("F2", "Board 2", "virtex5", lut(100))).To(Succeed())
			Expect(m.AddLink("L1", "backplane", "F1", "F2", 10, true)).To(Succeed())
			Expect(m.AddComponent("C1", "Filter", lut(60))).To(Succeed())
			Expect(m.AddComponent("C2", "Decoder", lut(50))).To(Succeed())
			Expect(m.AddConnection("X1", "c1 to c2", "C1", "C2", 5)).To(Succeed())
		})

		It("should split the components and report the link cost", func() {
			res, err := engine.DoMapping(m)

			Expect(err).NotTo(HaveOccurred())
			Expect(res.Assignments).To(Equal(map[model.Unit]string{
				comp("C1"): "F1",
				comp("C2"): "F2",
			}))
			Expect(res.Cost).To(BeNumerically("~", 0.5, 1e-9))
			Expect(res.Placed).To(HaveLen(2))
			Expect(res.Placed[0].Unit).To(Equal(comp("C1")))
			Expect(res.RunID).NotTo(BeEmpty())
			Expect(m.CheckIntegrity()).To(Succeed())
		})

		It("should be idempotent", func() {
			first, err := engine.DoMapping(m)
			Expect(err).NotTo(HaveOccurred())

			second, err := engine.DoMapping(m)
			Expect(err).NotTo(HaveOccurred())
			Expect(second.Placed).To(BeEmpty())
			Expect(second.Assignments).To(Equal(first.Assignments))
			Expect(second.Cost).To(BeNumerically("~", first.Cost, 1e-9))
			Expect(second.RunID).NotTo(Equal(first.RunID))
		})

		It("should keep manually mapped units in place", func() {
			Expect(m.MapComponentToFPGA("C2", "F1")).To(Succeed())

			res, err := engine.DoMapping(m)

			Expect(err).NotTo(HaveOccurred())
			Expect(res.Placed).To(HaveLen(1))
			Expect(res.Assignments[comp("C2")]).To(Equal("F1"))
			Expect(res.Assignments[comp("C1")]).To(Equal("F2"))
		})

		It("should place groups as a whole", func() {
			Expect(m.AddGroup("G1", "front")).To(Succeed())
			Expect(m.AddComponentToGroup("G1", "C1")).To(Succeed())

			res, err := engine.DoMapping(m)

			Expect(err).NotTo(HaveOccurred())
			Expect(res.Assignments).To(HaveKeyWithValue(group("G1"), "F1"))
			Expect(m.FPGAOf("C1")).To(Equal("F1"))
			Expect(m.FPGAOf("C2")).To(Equal("F2"))
		})

		It("should roll back the whole run when a unit does not fit", func() {
			Expect(m.AddComponent("C3", "Huge", lut(95))).To(Succeed())

			res, err := engine.DoMapping(m)

			Expect(res).To(BeNil())
			Expect(errors.Is(err, model.ErrCapacity)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("C2"))
			Expect(m.Assignments()).To(BeEmpty())
			Expect(m.Consumed("F1")).To(BeEmpty())
			Expect(m.Consumed("F2")).To(BeEmpty())
		})
	})

	Context("ordering", func() {
		It("should order by demand, then ID, then groups first", func() {
			Expect(m.AddComponent("A", "", lut(10))).To(Succeed())
			Expect(m.AddComponent("B", "", lut(30))).To(Succeed())
			Expect(m.AddComponent("S", "", lut(20))).To(Succeed())
			Expect(m.AddComponent("M", "", lut(20))).To(Succeed())
			Expect(m.AddGroup("S", "")).To(Succeed())
			Expect(m.AddComponentToGroup("S", "M")).To(Succeed())

			Expect(PendingUnits(m)).To(Equal([]model.Unit{
				comp("B"), group("S"), comp("S"), comp("A"),
			}))
		})
	})

	Context("cost driven choice", func() {
		BeforeEach(func() {
			for _, id := range []string{"F1", "F2", "F3"} {
				Expect(m.AddFPGA(id, id, "virtex5", lut(100))).To(Succeed())
			}
			Expect(m.AddLink("L12", "", "F1", "F2", 1, true)).To(Succeed())
			Expect(m.AddLink("L13", "", "F1", "F3", 100, true)).To(Succeed())
			Expect(m.AddComponent("C1", "", lut(90))).To(Succeed())
			Expect(m.AddComponent("C2", "", lut(20))).To(Succeed())
			Expect(m.AddConnection("X1", "", "C1", "C2", 1)).To(Succeed())
			Expect(m.MapComponentToFPGA("C1", "F1")).To(Succeed())
		})

		It("should pick the FPGA behind the fastest path", func() {
			res, err := engine.DoMapping(m)

			Expect(err).NotTo(HaveOccurred())
			Expect(res.Placed).To(HaveLen(1))
			Expect(res.Placed[0].FPGA).To(Equal("F3"))
			Expect(res.Placed[0].Candidates).To(HaveLen(2))
			Expect(res.Cost).To(BeNumerically("~", 0.01, 1e-9))
		})

		It("should fall back to the unroutable penalty", func() {
			Expect(m.RemoveLink("L12")).To(Succeed())
			Expect(m.RemoveLink("L13")).To(Succeed())

			res, err := engine.DoMapping(m)

			Expect(err).NotTo(HaveOccurred())
			Expect(res.Placed[0].FPGA).To(Equal("F2"))
			Expect(res.Cost).To(BeNumerically("~", 1000, 1e-9))
		})

		Context("with clusters", func() {
			BeforeEach(func() {
				Expect(m.AddCluster("K1", "near")).To(Succeed())
				Expect(m.AddCluster("K2", "far")).To(Succeed())
				Expect(m.AddFPGAToCluster("K1", "F1")).To(Succeed())
				Expect(m.AddFPGAToCluster("K1", "F2")).To(Succeed())
				Expect(m.AddFPGAToCluster("K2", "F3")).To(Succeed())
			})

			build := func(p Policy) *Engine {
				opts := DefaultOptions()
				opts.Policy = p
				return MakeBuilder().WithOptions(opts).Build()
			}

			It("should ignore clusters", func() {
				res, err := build(PolicyIgnore).DoMapping(m)
				Expect(err).NotTo(HaveOccurred())
				Expect(res.Placed[0].FPGA).To(Equal("F3"))
			})

			It("should penalize crossing clusters", func() {
				res, err := build(PolicyPenalize).DoMapping(m)
				Expect(err).NotTo(HaveOccurred())
				Expect(res.Placed[0].FPGA).To(Equal("F2"))
				Expect(res.Placed[0].Score).To(BeNumerically("~", 1.0, 1e-9))
			})

			It("should exclude crossing candidates when restricted", func() {
				res, err := build(PolicyRestrict).DoMapping(m)
				Expect(err).NotTo(HaveOccurred())
				Expect(res.Placed[0].FPGA).To(Equal("F2"))
				Expect(res.Placed[0].Candidates).To(ContainElement(
					HaveField("Excluded", BeTrue())))
			})

			It("should fail when restriction leaves no candidate", func() {
				Expect(m.SetFPGAResource("F2", "LUT", 10)).To(Succeed())

				_, err := build(PolicyRestrict).DoMapping(m)

				Expect(errors.Is(err, model.ErrCapacity)).To(BeTrue())
				Expect(err.Error()).To(ContainSubstring("restrict"))
				Expect(m.FPGAOf("C2")).To(BeEmpty())
			})
		})
	})

	Context("with a recorder", func() {
		var (
			mockCtrl *gomock.Controller
			recorder *MockRecorder
		)

		BeforeEach(func() {
			mockCtrl = gomock.NewController(GinkgoT())
			recorder = NewMockRecorder(mockCtrl)
			engine = MakeBuilder().WithRecorder(recorder).Build()

			Expect(m.AddFPGA("F1", "", "virtex5", lut(100))).To(Succeed())
			Expect(m.AddComponent("C1", "", lut(40))).To(Succeed())
			Expect(m.AddComponent("C2", "", lut(40))).To(Succeed())
		})

		AfterEach(func() {
			mockCtrl.Finish()
		})

		It("should record every decision and the run", func() {
			recorder.EXPECT().RecordDecision(gomock.Any(), gomock.Any()).Times(2)
			recorder.EXPECT().RecordRun(gomock.Any()).Do(func(r Run) {
				Expect(r.Pending).To(Equal(2))
				Expect(r.Placed).To(Equal(2))
				Expect(r.Err).To(BeEmpty())
				Expect(r.Policy).To(Equal(PolicyPenalize))
			})

			_, err := engine.DoMapping(m)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should record failed runs", func() {
			Expect(m.AddComponent("C3", "", lut(40))).To(Succeed())
			recorder.EXPECT().RecordDecision(gomock.Any(), gomock.Any()).Times(2)
			recorder.EXPECT().RecordRun(gomock.Any()).Do(func(r Run) {
				Expect(r.Placed).To(Equal(2))
				Expect(r.Err).To(ContainSubstring("CapacityError"))
			})

			_, err := engine.DoMapping(m)
			Expect(err).To(HaveOccurred())
		})
	})
})

var _ = Describe("Options", func() {
	It("should parse policies", func() {
		p, err := ParsePolicy("RESTRICT")
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal(PolicyRestrict))

		p, err = ParsePolicy("")
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal(PolicyPenalize))

		_, err = ParsePolicy("nearest")
		Expect(err).To(HaveOccurred())
	})

	It("should reject negative penalties", func() {
		opts := DefaultOptions()
		Expect(opts.Validate()).To(Succeed())
		opts.UnroutablePenalty = -1
		Expect(opts.Validate()).NotTo(Succeed())
	})
})
