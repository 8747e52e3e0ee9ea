package email

import (
	"crypto/tls"
	"fmt"
	"log"
	"strconv"

	"github.com/wneessen/go-mail"
)

// Client representa el cliente de correo electrónico
type Client struct {
	host      string
	port      int
	user      string
	password  string
	fromName  string
	fromEmail string
}

// NewClient crea una nueva instancia del cliente de email
func NewClient(host, portStr, user, password, fromName, fromEmail string) (*Client, error) {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("puerto SMTP inválido: %w", err)
	}

	return &Client{
		host:      host,
		port:      port,
		user:      user,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}, nil
}

// SendEmail envía un correo electrónico
func (c *Client) SendEmail(to, subject, htmlBody string) error {
	m := mail.NewMsg()

	if err := m.From(fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail)); err != nil {
		return fmt.Errorf("error al configurar remitente: %w", err)
	}

	if err := m.To(to); err != nil {
		return fmt.Errorf("error al configurar destinatario: %w", err)
	}

	m.Subject(subject)
	m.SetBodyString(mail.TypeTextHTML, htmlBody)

	log.Printf("SMTP: connecting to %s:%d as user=%s", c.host, c.port, c.user)

	client, err := mail.NewClient(c.host,
		mail.WithPort(c.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(c.user),
		mail.WithPassword(c.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTLSConfig(&tls.Config{
			ServerName: c.host,
		}),
	)
	if err != nil {
		return fmt.Errorf("error al crear cliente SMTP (host=%s port=%d user=%s): %w", c.host, c.port, c.user, err)
	}

	if err := client.DialAndSend(m); err != nil {
		// Añadir contexto útil al error sin exponer credenciales
		return fmt.Errorf("error al enviar correo (host=%s port=%d user=%s): %w", c.host, c.port, c.user, err)
	}

	return nil
}

// SendBienvenida envía el correo de bienvenida tras el registro
func (c *Client) SendBienvenida(to, nombreCompleto string) error {
	subject := fmt.Sprintf("Bienvenido a %s", c.fromName)
	htmlBody := generarHTMLBienvenida(nombreCompleto)

	return c.SendEmail(to, subject, htmlBody)
}

// generarHTMLBienvenida genera el HTML del correo de bienvenida
func generarHTMLBienvenida(nombreCompleto string) string {
	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2 style="color: #2c3e50;">¡Hola %s!</h2>
			<p>Tu cuenta fue creada exitosamente.</p>
			<p>Ya puedes buscar barberías cercanas, calificarlas y llevar el
			historial de tus visitas desde tu perfil.</p>
			<p style="color: #7f8c8d; font-size: 12px;">
				Si no creaste esta cuenta, ignora este correo.
			</p>
		</div>`, nombreCompleto)
}
