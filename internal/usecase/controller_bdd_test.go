package usecase

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/eliteGoblin/govswitch/internal/domain"
	"github.com/eliteGoblin/govswitch/internal/governor"
)

var _ = Describe("GovernorController", func() {
	var (
		runner    *mockRunner
		sched     *mockScheduler
		presenter *mockPresenter
		ctrl      *GovernorController
	)

	BeforeEach(func() {
		runner = &mockRunner{}
		sched = &mockScheduler{}
		presenter = &mockPresenter{}
		ctrl = NewGovernorController(
			DefaultControllerConfig(),
			governor.NewGovernorStore(),
			runner,
			sched,
			presenter,
			zap.NewNop(),
		)
	})

	AfterEach(func() {
		ctrl.Close()
	})

	active := func() domain.GovernorID {
		id, _ := ctrl.Active()
		return id
	}

	Describe("startup probe", func() {
		DescribeTable("always leaves a governor active",
			func(outcomes []domain.CommandResult, want domain.GovernorID) {
				for _, res := range outcomes {
					runner.complete(res)
					sched.fireNext()
				}
				Expect(ctrl.ProbeDone()).To(BeClosed())
				Expect(active()).To(Equal(want))
			},
			Entry("override marker with a mode",
				[]domain.CommandResult{okResult("...Warning: governor Setting to use: \"performance\"...")},
				domain.GovernorPerformance),
			Entry("no override marker",
				[]domain.CommandResult{okResult("...no warning text...")},
				domain.GovernorBalanced),
			Entry("override marker without a mode",
				[]domain.CommandResult{okResult("Warning: governor overwritten using `--force` flag.")},
				domain.GovernorBalanced),
			Entry("every attempt fails",
				[]domain.CommandResult{
					failResult(124, ""),
					failResult(124, ""),
					failResult(1, "auto-cpufreq: command not found"),
					failResult(1, "auto-cpufreq: command not found"),
				},
				domain.GovernorBalanced),
		)

		Context("when the status command keeps failing", func() {
			It("makes four attempts one second apart", func() {
				for i := 0; i < 4; i++ {
					runner.complete(failResult(1, "busy"))
					sched.fireNext()
				}

				Expect(runner.calls).To(HaveLen(4))
				Expect(sched.timers).To(HaveLen(3))
				for _, tm := range sched.timers {
					Expect(tm.delay).To(BeNumerically(">=", DefaultRetryConfig().Delay))
				}
				Expect(ctrl.Phase()).To(Equal(domain.ProbeFailed))
			})
		})
	})

	Describe("switch requests", func() {
		BeforeEach(func() {
			runner.complete(okResult("...no warning text..."))
			Expect(active()).To(Equal(domain.GovernorBalanced))
		})

		Context("when the activation command succeeds", func() {
			It("activates the governor and acknowledges once", func() {
				Expect(ctrl.RequestSwitch(domain.GovernorPowersave, nil)).To(Succeed())
				runner.complete(okResult(""))

				Expect(active()).To(Equal(domain.GovernorPowersave))
				Expect(presenter.acks).To(Equal([]switchAck{{ok: true, displayName: "Powersave"}}))
			})
		})

		Context("when authorization is refused with exit status 0", func() {
			It("leaves the governor unchanged and reports the diagnostic", func() {
				Expect(ctrl.RequestSwitch(domain.GovernorPowersave, nil)).To(Succeed())
				runner.complete(domain.CommandResult{ExitCode: 0, Stderr: "Error: not authorized"})

				Expect(active()).To(Equal(domain.GovernorBalanced))
				Expect(presenter.acks).To(Equal([]switchAck{{
					displayName: "Powersave",
					diagnostic:  "Error: not authorized",
				}}))
			})
		})

		Context("when the governor is already active", func() {
			It("spawns nothing and changes nothing", func() {
				before := len(presenter.changes)

				err := ctrl.RequestSwitch(domain.GovernorBalanced, nil)

				Expect(err).To(MatchError(domain.ErrAlreadyActive))
				Expect(runner.calls).To(HaveLen(1))
				Expect(presenter.changes).To(HaveLen(before))
				Expect(active()).To(Equal(domain.GovernorBalanced))
			})
		})

		Context("when a switch is already in flight", func() {
			It("rejects the second request", func() {
				Expect(ctrl.RequestSwitch(domain.GovernorPerformance, nil)).To(Succeed())

				err := ctrl.RequestSwitch(domain.GovernorPowersave, nil)

				Expect(err).To(MatchError(domain.ErrOperationInProgress))
				Expect(runner.pending).To(HaveLen(1))
			})

			It("reports the in-flight switch even for the active governor", func() {
				Expect(ctrl.RequestSwitch(domain.GovernorPowersave, nil)).To(Succeed())

				err := ctrl.RequestSwitch(domain.GovernorBalanced, nil)

				Expect(err).To(MatchError(domain.ErrOperationInProgress))
				Expect(runner.pending).To(HaveLen(1))
			})
		})

		DescribeTable("never mutates state on failure",
			func(target domain.GovernorID, res domain.CommandResult) {
				Expect(ctrl.RequestSwitch(target, nil)).To(Succeed())
				runner.complete(res)

				Expect(active()).To(Equal(domain.GovernorBalanced))
				Expect(presenter.acks).To(HaveLen(1))
				Expect(presenter.acks[0].ok).To(BeFalse())
			},
			Entry("non-zero exit", domain.GovernorPerformance, failResult(127, "")),
			Entry("stderr only", domain.GovernorPowersave, domain.CommandResult{Stderr: "dismissed"}),
			Entry("launch failure", domain.GovernorPerformance, domain.CommandResult{ExitCode: -1, LaunchErr: domain.ErrLaunchFailure}),
		)
	})

	Describe("teardown", func() {
		It("turns a late retry timer into a no-op", func() {
			runner.complete(failResult(1, ""))
			Expect(sched.armed()).To(Equal(1))

			ctrl.Close()
			sched.fireLate(0)

			Expect(runner.calls).To(HaveLen(1))
			Expect(presenter.changes).To(BeEmpty())
		})
	})
})
