package authRepository

const (
	queryCreateUser = `
		INSERT INTO users (id, username, email, first_name, last_name, phone, timezone, currency, password, created_at, updated_at)
		VALUES (:id, :username, :email, :first_name, :last_name, :phone, :timezone, :currency, :password, :created_at, :updated_at)
	`

	queryGetUserByID = `
		SELECT id, username, email, first_name, last_name, phone, timezone, currency, password, created_at, updated_at
		FROM users
		WHERE id = :id
	`

	queryGetUserByUsername = `
		SELECT id, username, email, first_name, last_name, phone, timezone, currency, password, created_at, updated_at
		FROM users
		WHERE username = :username
	`

	queryGetUserByEmail = `
		SELECT id, username, email, first_name, last_name, phone, timezone, currency, password, created_at, updated_at
		FROM users
		WHERE email = :email
	`

	queryUpdateUser = `
		UPDATE users
		SET first_name = :first_name,
			last_name = :last_name,
			phone = :phone,
			timezone = :timezone,
			currency = :currency,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryUpdateUserPassword = `
		UPDATE users
		SET password = :password,
			updated_at = :updated_at
		WHERE email = :email
	`

	queryDeleteUser = `
		DELETE FROM users
		WHERE id = :id
	`
)
