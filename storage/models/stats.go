package models

type Stats struct {
	Users    int64
	Groups   int64
	Posts    int64
	Comments int64
	Follows  int64
}
