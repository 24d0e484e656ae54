package mysqlstore

const createTableSQL = `
CREATE TABLE IF NOT EXISTS hotels (
  id               BIGINT NOT NULL AUTO_INCREMENT,
  city             VARCHAR(128) NOT NULL,
  country          VARCHAR(128) NOT NULL,
  star_rating      DOUBLE NOT NULL,
  cleanliness_base DOUBLE NOT NULL,
  comfort_base     DOUBLE NOT NULL,
  facilities_base  DOUBLE NOT NULL,
  PRIMARY KEY (id),
  KEY idx_city (city),
  KEY idx_country (country)
)
`

// Dataset order is the insertion order; id preserves it across restarts.
const selectHotelsSQL = `
SELECT city, country, star_rating, cleanliness_base, comfort_base, facilities_base
FROM hotels
ORDER BY id
`

const insertHotelsPrefix = "INSERT INTO hotels\n  (city, country, star_rating, cleanliness_base, comfort_base, facilities_base)\nVALUES "
