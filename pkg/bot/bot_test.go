package bot

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	tele "gopkg.in/telebot.v3"

	"taxidispatch/pkg/logger"
	"taxidispatch/pkg/metrics"
	"taxidispatch/pkg/models"
	"taxidispatch/service"
	"taxidispatch/storage/memory"
)

const staffID = 4242

// fakeContext records what handlers send. Methods it does not override panic
// through the nil embedded Context.
type fakeContext struct {
	tele.Context
	sender    *tele.User
	args      []string
	data      string
	sent      []interface{}
	responses []*tele.CallbackResponse
}

func (f *fakeContext) Sender() *tele.User { return f.sender }
func (f *fakeContext) Args() []string     { return f.args }
func (f *fakeContext) Data() string       { return f.data }

func (f *fakeContext) Send(what interface{}, opts ...interface{}) error {
	f.sent = append(f.sent, what)
	return nil
}

func (f *fakeContext) Respond(resp ...*tele.CallbackResponse) error {
	f.responses = append(f.responses, resp...)
	return nil
}

func (f *fakeContext) lastText() string {
	if len(f.sent) == 0 {
		return ""
	}
	s, _ := f.sent[len(f.sent)-1].(string)
	return s
}

type BotSuite struct {
	suite.Suite
	svc service.IServiceManager
	bot *Bot
}

func TestBotSuite(t *testing.T) {
	suite.Run(t, new(BotSuite))
}

func (s *BotSuite) SetupTest() {
	m := metrics.New(prometheus.NewRegistry())
	s.svc = service.New(memory.New(), logger.NewNop(), m, service.Options{EnrichConcurrency: 2})
	s.bot = newBot(s.svc, logger.NewNop(), []int64{staffID})
}

func (s *BotSuite) staffCtx(args ...string) *fakeContext {
	return &fakeContext{sender: &tele.User{ID: staffID}, args: args}
}

func ptr[T any](v T) *T { return &v }

func (s *BotSuite) driverWithDebt(name string, debt float64) *models.Driver {
	ctx := context.Background()
	d, err := s.svc.Driver().Create(ctx, &models.DriverFields{Name: ptr(name), Phone: ptr("600111222")})
	s.Require().NoError(err)
	d, err = s.svc.Driver().Update(ctx, d.ID, &models.DriverFields{Debt: ptr(debt)})
	s.Require().NoError(err)
	return d
}

func (s *BotSuite) TestStaffOnly() {
	called := false
	h := s.bot.staffOnly(func(c tele.Context) error {
		called = true
		return nil
	})

	stranger := &fakeContext{sender: &tele.User{ID: 1}}
	s.Require().NoError(h(stranger))
	s.False(called)
	s.Equal(messages["no_entry"], stranger.lastText())

	s.Require().NoError(h(s.staffCtx()))
	s.True(called)
}

func (s *BotSuite) TestDebtsListsOwingDrivers() {
	s.driverWithDebt("Luis", 45)
	s.driverWithDebt("Marta", 0)

	c := s.staffCtx()
	s.Require().NoError(s.bot.handleDebts(c))
	s.Require().Len(c.sent, 1)
	s.Contains(c.lastText(), "Luis")
	s.Contains(c.lastText(), "45.00 €")

	c = s.staffCtx()
	s.Require().NoError(s.bot.handleNoDebt(c))
	s.Contains(c.lastText(), "Marta")
	s.NotContains(c.lastText(), "Luis")
}

func (s *BotSuite) TestSettleCallback() {
	d := s.driverWithDebt("Luis", 45)

	c := s.staffCtx()
	c.data = "1"
	s.Require().NoError(s.bot.handleSettleCallback(c))
	s.Require().Len(c.responses, 1)
	s.False(c.responses[0].ShowAlert)
	s.Contains(c.lastText(), "Luis")

	got, err := s.svc.Driver().Get(context.Background(), d.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got.Debt)
	s.Zero(*got.Debt)

	c = s.staffCtx()
	c.data = "1"
	s.Require().NoError(s.bot.handleSettleCallback(c))
	s.Require().Len(c.responses, 1)
	s.True(c.responses[0].ShowAlert)
	s.Contains(c.responses[0].Text, "Nothing to do")
	s.Empty(c.sent)
}

func (s *BotSuite) TestSettleCommand() {
	c := s.staffCtx()
	s.Require().NoError(s.bot.handleSettleCommand(c))
	s.Equal(messages["usage_settle"], c.lastText())

	c = s.staffCtx("9")
	s.Require().NoError(s.bot.handleSettleCommand(c))
	s.Contains(c.lastText(), "Not found")
}

func (s *BotSuite) TestHistoryAndRecord() {
	d := s.driverWithDebt("Luis", 0)
	_, err := s.svc.Services().Create(context.Background(), &models.RecordInput{
		Origin:      ptr("Plaza <Mayor>"),
		Destination: ptr("Aeropuerto"),
		Price:       ptr(30.0),
		Date:        ptr("2024-03-01"),
		DriverID:    ptr(d.ID),
		ClientName:  ptr("Ana"),
		ClientPhone: ptr("600000001"),
	})
	s.Require().NoError(err)

	c := s.staffCtx("1", "2024-03-01")
	s.Require().NoError(s.bot.handleHistory(c))
	s.Contains(c.lastText(), "Plaza &lt;Mayor&gt;")
	s.Contains(c.lastText(), "Ana")

	c = s.staffCtx("1", "2024-03-02")
	s.Require().NoError(s.bot.handleHistory(c))
	s.Equal(messages["no_history"], c.lastText())

	c = s.staffCtx("x")
	s.Require().NoError(s.bot.handleHistory(c))
	s.Equal(messages["usage_hist"], c.lastText())

	c = s.staffCtx("1")
	s.Require().NoError(s.bot.handleService(c))
	s.Contains(c.lastText(), "3.00 €")

	c = s.staffCtx("1")
	s.Require().NoError(s.bot.handleReservation(c))
	s.Contains(c.lastText(), "Not found")
}

func (s *BotSuite) TestClients() {
	c := s.staffCtx()
	s.Require().NoError(s.bot.handleClients(c))
	s.Equal(messages["no_clients"], c.lastText())

	_, err := s.svc.Client().Create(context.Background(), &models.ClientFields{Name: ptr("Ana"), Phone: ptr("600000001")})
	s.Require().NoError(err)

	c = s.staffCtx()
	s.Require().NoError(s.bot.handleClients(c))
	s.Contains(c.lastText(), "Ana")
	s.Contains(c.lastText(), "0 servicios")
}
