// Package simpledb opens an embedded log-structured key-value store.
//
// Example:
//
//	db, err := simpledb.Open(simpledb.WithLogFilePath("./data/log"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	err = db.Set("foo", "bar")
//	val, found, err := db.Get("foo")
package simpledb
