package notify

import (
	"fmt"
	"strconv"
	"strings"

	"wholesale-be/internal/config"
	"wholesale-be/internal/order"

	"github.com/wneessen/go-mail"
)

// SMTPMailer sends transactional mail over SMTP. When no SMTP host is
// configured it becomes a no-op so local setups work without a mail server.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	port, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil || port == 0 {
		port = 587
	}
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     port,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.MailFrom,
	}
}

func (m *SMTPMailer) SendOrderConfirmation(to string, o *order.Order) error {
	if m.host == "" {
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(fmt.Sprintf("Order confirmation %s", o.Reference))
	msg.SetBodyString(mail.TypeTextHTML, orderConfirmationHTML(o))

	client, err := mail.NewClient(m.host,
		mail.WithPort(m.port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(m.username),
		mail.WithPassword(m.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	return client.DialAndSend(msg)
}

func orderConfirmationHTML(o *order.Order) string {
	var rows strings.Builder
	for _, it := range o.Items {
		rows.WriteString(fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%s</td>
				<td>%d</td>
				<td>£%.2f</td>
				<td>£%.2f</td>
			</tr>`, it.Item, it.Description, it.Quantity, it.Price, it.Price*float64(it.Quantity)))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Thank you for your order</h2>
		<p>Your order <strong>%s</strong> has been received and is awaiting picking.</p>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Code</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Product</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Qty</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Price</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
		</table>
		<p style="font-size: 18px;"><strong>Total: £%.2f</strong></p>
	</div>
</body>
</html>`, o.Reference, rows.String(), o.Total)
}
