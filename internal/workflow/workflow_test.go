package workflow

import (
	"context"
	"slices"
	"testing"

	"github.com/shaiso/Keeper/internal/domain"
)

// fakeSession записывает порядок вызовов и отдаёт заранее заданные ответы.
type fakeSession struct {
	calls []string

	registration domain.RegistrationStatus
	verify       domain.StepStatus
	register     domain.StepStatus
	claim        domain.StepStatus
	nodeRunning  bool
	nodeStatus   domain.StepStatus
	stop         domain.StepStatus
	start        domain.StepStatus
	points       int64
	pointsStatus domain.StepStatus

	panicOn string
}

// happySession — аккаунт уже зарегистрирован, все шаги проходят.
func happySession() *fakeSession {
	return &fakeSession{
		registration: domain.Registered,
		verify:       domain.StepOK,
		register:     domain.StepOK,
		claim:        domain.StepOK,
		nodeStatus:   domain.StepOK,
		stop:         domain.StepOK,
		start:        domain.StepOK,
		points:       150,
		pointsStatus: domain.StepOK,
	}
}

func (f *fakeSession) record(name string) {
	f.calls = append(f.calls, name)
	if f.panicOn == name {
		panic("boom: " + name)
	}
}

func (f *fakeSession) IsRegistered(context.Context) domain.RegistrationStatus {
	f.record("IsRegistered")
	return f.registration
}

func (f *fakeSession) VerifyReferralCode(context.Context) domain.StepStatus {
	f.record("VerifyReferralCode")
	return f.verify
}

func (f *fakeSession) Register(context.Context) domain.StepStatus {
	f.record("Register")
	return f.register
}

func (f *fakeSession) ClaimDaily(context.Context) domain.StepStatus {
	f.record("ClaimDaily")
	return f.claim
}

func (f *fakeSession) NodeStatus(context.Context) (bool, domain.StepStatus) {
	f.record("NodeStatus")
	return f.nodeRunning, f.nodeStatus
}

func (f *fakeSession) StartNode(context.Context) domain.StepStatus {
	f.record("StartNode")
	return f.start
}

func (f *fakeSession) StopNode(context.Context) domain.StepStatus {
	f.record("StopNode")
	return f.stop
}

func (f *fakeSession) FetchPoints(context.Context) (int64, domain.StepStatus) {
	f.record("FetchPoints")
	return f.points, f.pointsStatus
}

func testAccount() *domain.Account {
	return &domain.Account{
		Address:    "0x1111111111111111111111111111111111111111",
		PrivateKey: "deadbeef",
		RefCode:    "INVITE42",
	}
}

func TestRun_AlreadyRegisteredSkipsOnboarding(t *testing.T) {
	sess := happySession()
	acc := testAccount()

	res := Run(context.Background(), sess, acc, nil)

	if res.Outcome != domain.OutcomeSucceeded || res.FinalState != StateDone {
		t.Fatalf("unexpected result: %+v", res)
	}
	want := []string{"IsRegistered", "ClaimDaily", "NodeStatus", "StartNode", "FetchPoints"}
	if !slices.Equal(sess.calls, want) {
		t.Errorf("call order = %v, want %v", sess.calls, want)
	}
	if acc.Points != 150 || res.Points == nil || *res.Points != 150 {
		t.Errorf("points must be recorded: acc=%d res=%v", acc.Points, res.Points)
	}
}

func TestRun_NotRegisteredOnboards(t *testing.T) {
	sess := happySession()
	sess.registration = domain.NotRegistered

	res := Run(context.Background(), sess, testAccount(), nil)

	if res.Outcome != domain.OutcomeSucceeded {
		t.Fatalf("unexpected outcome: %v", res.Outcome)
	}
	want := []string{"IsRegistered", "VerifyReferralCode", "Register", "ClaimDaily", "NodeStatus", "StartNode", "FetchPoints"}
	if !slices.Equal(sess.calls, want) {
		t.Errorf("call order = %v, want %v", sess.calls, want)
	}
}

func TestRun_InvalidReferralAborts(t *testing.T) {
	sess := happySession()
	sess.registration = domain.NotRegistered
	sess.verify = domain.StepRejected

	res := Run(context.Background(), sess, testAccount(), nil)

	if res.Outcome != domain.OutcomeFailed || res.FinalState != StateAborted {
		t.Fatalf("invalid code must abort: %+v", res)
	}
	// После отказа кода — ни регистрации, ни последующих шагов.
	for _, call := range sess.calls {
		if call == "Register" || call == "ClaimDaily" {
			t.Errorf("unexpected call after aborted verification: %v", sess.calls)
		}
	}
}

func TestRun_RegistrationRejectedAborts(t *testing.T) {
	sess := happySession()
	sess.registration = domain.NotRegistered
	sess.register = domain.StepRejected

	res := Run(context.Background(), sess, testAccount(), nil)

	if res.Outcome != domain.OutcomeFailed || res.FinalState != StateAborted {
		t.Fatalf("rejected registration must abort: %+v", res)
	}
	if slices.Contains(sess.calls, "ClaimDaily") {
		t.Errorf("no steps must run after aborted registration: %v", sess.calls)
	}
}

func TestRun_UnknownRegistrationContinues(t *testing.T) {
	// Статус регистрации неизвестен — workflow продолжается оптимистично.
	sess := happySession()
	sess.registration = domain.RegistrationUnknown

	res := Run(context.Background(), sess, testAccount(), nil)

	if res.Outcome != domain.OutcomeSucceeded {
		t.Fatalf("unknown registration must not abort: %+v", res)
	}
	want := []string{"IsRegistered", "ClaimDaily", "NodeStatus", "StartNode", "FetchPoints"}
	if !slices.Equal(sess.calls, want) {
		t.Errorf("call order = %v, want %v", sess.calls, want)
	}
}

func TestRun_ClaimRejectionDoesNotBranch(t *testing.T) {
	sess := happySession()
	sess.claim = domain.StepRejected

	res := Run(context.Background(), sess, testAccount(), nil)

	if res.Outcome != domain.OutcomeSucceeded {
		t.Fatalf("claim rejection must not fail the workflow: %+v", res)
	}
	if !slices.Contains(sess.calls, "StartNode") {
		t.Errorf("workflow must continue past rejected claim: %v", sess.calls)
	}
}

func TestRun_RunningNodeStoppedBeforeStart(t *testing.T) {
	sess := happySession()
	sess.nodeRunning = true

	Run(context.Background(), sess, testAccount(), nil)

	stopIdx := slices.Index(sess.calls, "StopNode")
	startIdx := slices.Index(sess.calls, "StartNode")
	if stopIdx == -1 || startIdx == -1 || stopIdx > startIdx {
		t.Errorf("running node must be stopped before start: %v", sess.calls)
	}
}

func TestRun_StoppedNodeNotStopped(t *testing.T) {
	sess := happySession()
	sess.nodeRunning = false

	Run(context.Background(), sess, testAccount(), nil)

	if slices.Contains(sess.calls, "StopNode") {
		t.Errorf("stopped node must not receive a stop: %v", sess.calls)
	}
	if !slices.Contains(sess.calls, "StartNode") {
		t.Errorf("start must always run: %v", sess.calls)
	}
}

func TestRun_NodeStatusUnavailableStillStarts(t *testing.T) {
	// Статус node неизвестен — stop пропускаем, start всё равно шлём.
	sess := happySession()
	sess.nodeStatus = domain.StepUnavailable

	Run(context.Background(), sess, testAccount(), nil)

	if slices.Contains(sess.calls, "StopNode") {
		t.Errorf("unknown node status must not trigger a stop: %v", sess.calls)
	}
	if !slices.Contains(sess.calls, "StartNode") {
		t.Errorf("start must always run: %v", sess.calls)
	}
}

func TestRun_PointsUnavailableLeavesNil(t *testing.T) {
	sess := happySession()
	sess.pointsStatus = domain.StepUnavailable
	acc := testAccount()
	acc.Points = 42

	res := Run(context.Background(), sess, acc, nil)

	if res.Outcome != domain.OutcomeSucceeded || res.FinalState != StateDone {
		t.Fatalf("points failure must not fail the workflow: %+v", res)
	}
	if res.Points != nil {
		t.Errorf("points must stay unknown, got %d", *res.Points)
	}
	if acc.Points != 42 {
		t.Errorf("stale balance must not be overwritten, got %d", acc.Points)
	}
}

func TestRun_PanicTurnsIntoFailed(t *testing.T) {
	sess := happySession()
	sess.panicOn = "ClaimDaily"

	res := Run(context.Background(), sess, testAccount(), nil)

	if res.Outcome != domain.OutcomeFailed || res.FinalState != StateFailed {
		t.Fatalf("panic must settle as Failed: %+v", res)
	}
}
