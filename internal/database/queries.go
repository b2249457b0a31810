package database

const (
	insertAdRequest = `
		INSERT INTO ad_requests (id, title, description, email, user_id, status, created_at)
		VALUES (:id, :title, :description, :email, :user_id, :status, :created_at)`

	insertAdImage = `
		INSERT INTO ad_images (id, ad_request_id, user_id, file_name, original_image_url, status, created_at)
		VALUES (:id, :ad_request_id, :user_id, :file_name, :original_image_url, :status, :created_at)`

	selectAdRequests = `
		SELECT id, title, description, email, user_id, status, created_at
		FROM ad_requests
		WHERE user_id = ?
		ORDER BY created_at DESC`

	selectAdRequest = `
		SELECT id, title, description, email, user_id, status, created_at
		FROM ad_requests
		WHERE id = ? AND user_id = ?`

	selectAdImages = `
		SELECT id, ad_request_id, user_id, file_name, original_image_url, status, created_at
		FROM ad_images
		WHERE ad_request_id = ? AND user_id = ?
		ORDER BY created_at ASC, file_name ASC`

	updateAdRequestStatus = `
		UPDATE ad_requests
		SET status = ?
		WHERE id = ?`

	deleteAdImages = `
		DELETE FROM ad_images
		WHERE ad_request_id = ? AND user_id = ?`

	deleteAdRequest = `
		DELETE FROM ad_requests
		WHERE id = ? AND user_id = ?`

	insertContact = `
		INSERT INTO contacts (id, name, email, message, created_at)
		VALUES (:id, :name, :email, :message, :created_at)`
)
