package notify

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"lessonquiz/internal/logger"
	"lessonquiz/internal/model"
)

var (
	host     = "https://api.sendgrid.com"
	endpoint = "/v3/mail/send"
)

// SendgridNotifier mails notifications through the SendGrid v3 API.
type SendgridNotifier struct {
	key        string
	from       *sgmail.Email
	subjPrefix string
	log        logger.Logger
}

var _ Notifier = (*SendgridNotifier)(nil)

func NewSendgridNotifier(key, appName, fromAddress string, log logger.Logger) *SendgridNotifier {
	return &SendgridNotifier{
		key:        key,
		from:       sgmail.NewEmail(appName, fromAddress),
		subjPrefix: "[" + appName + "] ",
		log:        log,
	}
}

// QuizPassed queues the mail and returns; delivery errors are logged.
func (n *SendgridNotifier) QuizPassed(_ context.Context, learner model.Learner, lessonID string, result model.ScoreResult) error {
	if learner.Email == "" {
		return nil
	}
	msg := passedMessage(learner, lessonID, result)
	go n.send(msg)
	return nil
}

func (n *SendgridNotifier) prepare(msg Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = n.subjPrefix + msg.Subject
	p.AddTos(sgmail.NewEmail(msg.To.Name, msg.To.Address))

	m := sgmail.NewV3Mail()
	m.SetFrom(n.from)
	m.AddPersonalizations(p)
	m.AddContent(
		sgmail.NewContent("text/plain", msg.Text),
		sgmail.NewContent("text/html", msg.HTML),
	)
	return m
}

func (n *SendgridNotifier) send(msg Message) {
	req := sendgrid.GetRequest(n.key, endpoint, host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(n.prepare(msg))

	res, err := sendgrid.API(req)
	if err != nil {
		n.log.Error(fmt.Sprintf("[Notify] sending email: %v", err), err)
	} else if res.StatusCode >= http.StatusBadRequest {
		n.log.Error(fmt.Sprintf("[Notify] sending email - status: %d - Body: %s", res.StatusCode, res.Body))
	}
}
