package sqlstore

// Placeholders are `?` in both dialects.

// -----------------------------------------------------------------------------
// BUSINESSES
// -----------------------------------------------------------------------------

const businessColumns = `id, name, street_address, owner_id, city, state, zip_code`

const insertBusinessSQL = `
INSERT INTO businesses
  (name, street_address, owner_id, city, state, zip_code)
VALUES
  (?, ?, ?, ?, ?, ?)
`

const getBusinessSQL = `SELECT ` + businessColumns + ` FROM businesses WHERE id = ?`

const businessExistsSQL = `SELECT COUNT(*) FROM businesses WHERE id = ?`

const listBusinessesSQL = `
SELECT ` + businessColumns + `
FROM businesses
ORDER BY id
LIMIT ? OFFSET ?
`

const listBusinessesByOwnerSQL = `
SELECT ` + businessColumns + `
FROM businesses
WHERE owner_id = ?
ORDER BY id
`

const updateBusinessSQL = `
UPDATE businesses
SET name = ?, street_address = ?, owner_id = ?, city = ?, state = ?, zip_code = ?
WHERE id = ?
`

const deleteBusinessReviewsSQL = `DELETE FROM reviews WHERE business_id = ?`

const deleteBusinessSQL = `DELETE FROM businesses WHERE id = ?`

// -----------------------------------------------------------------------------
// REVIEWS
// -----------------------------------------------------------------------------

const reviewColumns = `id, user_id, business_id, stars, review_text`

const insertReviewSQL = `
INSERT INTO reviews
  (user_id, business_id, stars, review_text)
VALUES
  (?, ?, ?, ?)
`

const reviewPairExistsSQL = `SELECT COUNT(*) FROM reviews WHERE user_id = ? AND business_id = ?`

const getReviewSQL = `SELECT ` + reviewColumns + ` FROM reviews WHERE id = ?`

const listReviewsByUserSQL = `
SELECT ` + reviewColumns + `
FROM reviews
WHERE user_id = ?
ORDER BY id
`

// COALESCE keeps the stored text when the caller did not send one.
const updateReviewSQL = `
UPDATE reviews
SET stars = ?, review_text = COALESCE(?, review_text)
WHERE id = ?
`

const deleteReviewSQL = `DELETE FROM reviews WHERE id = ?`

// -----------------------------------------------------------------------------
// LODGINGS
// -----------------------------------------------------------------------------

const lodgingColumns = `lodging_id, name, description, price`

const insertLodgingSQL = `INSERT INTO lodgings (name, description, price) VALUES (?, ?, ?)`

const getLodgingSQL = `SELECT ` + lodgingColumns + ` FROM lodgings WHERE lodging_id = ?`

const lodgingExistsSQL = `SELECT COUNT(*) FROM lodgings WHERE lodging_id = ?`

const listLodgingsSQL = `SELECT ` + lodgingColumns + ` FROM lodgings ORDER BY lodging_id`

const updateLodgingSQL = `
UPDATE lodgings
SET name = ?, description = ?, price = ?
WHERE lodging_id = ?
`

const deleteLodgingSQL = `DELETE FROM lodgings WHERE lodging_id = ?`

// -----------------------------------------------------------------------------
// MIGRATIONS
// -----------------------------------------------------------------------------

const createMigrationsTableSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version    INTEGER PRIMARY KEY,
  applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)
`

const currentVersionSQL = `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`

const recordMigrationSQL = `INSERT INTO schema_migrations (version) VALUES (?)`
