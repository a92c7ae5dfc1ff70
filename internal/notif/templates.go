package notif

const newMessageTemplate = `<html>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
      <h2>New Message Received</h2>
      <p>Hi {{.ReceiverName}},</p>
      <p>You have received a new message from <strong>{{.SenderName}}</strong>:</p>
      <div style="background-color: #f5f5f5; padding: 15px; margin: 20px 0;">
        <p style="margin: 0; font-style: italic;">"{{.Preview}}"</p>
      </div>
      <p><a href="{{.AppURL}}/messages">View Message</a></p>
      <hr>
      <p style="color: #888; font-size: 12px;">
        This is an automated notification from {{.AppName}}. Please do not reply to this email.
      </p>
    </div>
  </body>
</html>`

const welcomeTemplate = `<html>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
      <h2>Welcome to {{.AppName}}!</h2>
      <p>Hi {{.Username}},</p>
      <p>Thank you for registering! Your account has been successfully created.</p>
      <p>You can now send and receive messages and manage your conversations.</p>
      <p><a href="{{.AppURL}}/login">Start Messaging</a></p>
      <hr>
      <p style="color: #888; font-size: 12px;">
        If you didn't create this account, please ignore this email.
      </p>
    </div>
  </body>
</html>`

const unreadDigestTemplate = `<html>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
      <h2>Unread Messages Summary</h2>
      <p>Hi {{.Username}},</p>
      <p>You have <strong>{{.UnreadCount}}</strong> unread message{{.Plural}} from:</p>
      <p>{{.SenderList}}</p>
      <p><a href="{{.AppURL}}/messages">Read Your Messages</a></p>
      <hr>
      <p style="color: #888; font-size: 12px;">
        This is an automated digest from {{.AppName}}.
      </p>
    </div>
  </body>
</html>`
