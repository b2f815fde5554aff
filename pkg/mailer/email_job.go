package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// The API renders the message before enqueueing, so the worker only delivers it.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}

// Message returns the job as a Message ready for a Sender.
func (j EmailJob) Message() Message {
	return Message{To: j.To, Subject: j.Subject, Text: j.Text, HTML: j.HTML}
}
