package store

import (
	"testing"

	"github.com/aquilax/blogboard/database/memory"
	"github.com/aquilax/blogboard/post"
	"github.com/google/go-cmp/cmp"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBookmarkSet(t *testing.T) {
	Convey("Given a bookmark set", t, func() {
		db := memory.New()
		b := NewBookmarkSet(db)

		Convey("nothing is bookmarked", func() {
			ok, err := b.Contains(1)
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("toggling adds the id", func() {
			ok, err := b.Toggle(1)
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
			in, _ := b.Contains(1)
			So(in, ShouldBeTrue)

			raw, _ := db.Get(bookmarksKey)
			So(raw, ShouldEqual, "[1]")

			Convey("toggling again restores the original state", func() {
				ok, err := b.Toggle(1)
				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)
				in, _ := b.Contains(1)
				So(in, ShouldBeFalse)
				raw, _ := db.Get(bookmarksKey)
				So(raw, ShouldEqual, "[]")
			})
		})

		Convey("ids keep insertion order", func() {
			_, _ = b.Toggle(2)
			_, _ = b.Toggle(1)
			_, _ = b.Toggle(3)
			_, _ = b.Toggle(1)
			ids, _ := b.IDs()
			So(ids, ShouldResemble, []post.PostID{2, 3})
		})
	})
}

func TestBookmarkSetListPostsDropsStaleIDs(t *testing.T) {
	db := memory.New()
	posts := NewPostStore(db)
	if err := posts.Initialize(); err != nil {
		t.Fatal(err)
	}
	_ = db.Set(bookmarksKey, "[2, 99, 1]")
	got, err := NewBookmarkSet(db).ListPosts(posts)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]post.PostID{2, 1}, got.IDs()); diff != "" {
		t.Errorf("ListPosts() mismatch (-want +got):\n%s", diff)
	}
}

func TestBookmarkSetCorruptValue(t *testing.T) {
	db := memory.New()
	_ = db.Set(bookmarksKey, `["1"]`)
	b := NewBookmarkSet(db)
	ids, err := b.IDs()
	if err != nil || len(ids) != 0 {
		t.Fatalf("IDs() = %v, %v", ids, err)
	}
	if ok, _ := b.Toggle(1); !ok {
		t.Errorf("Toggle() = false, want true")
	}
}
