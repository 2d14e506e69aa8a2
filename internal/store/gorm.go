package store

import (
	"context"
	"errors"
	"strings"

	"github.com/emrgen/jobpost/internal/model"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ Store = (*GormStore)(nil)

type GormStore struct {
	db *gorm.DB
}

// notFound maps gorm's missing record error onto ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (g *GormStore) CreateJobPost(ctx context.Context, post *model.JobPost) error {
	return g.db.WithContext(ctx).Create(post).Error
}

func (g *GormStore) GetJobPost(ctx context.Context, id uint) (*model.JobPost, error) {
	var post model.JobPost
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &post, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// nameLike narrows q to rows whose name contains query, ignoring case.
func nameLike(q *gorm.DB, query string) *gorm.DB {
	query = strings.TrimSpace(query)
	if query == "" {
		return q
	}
	return q.Where(`LOWER(name) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(strings.ToLower(query))+"%")
}

func (g *GormStore) ListJobPosts(ctx context.Context, category *string, query string) ([]*model.JobPost, error) {
	var posts []*model.JobPost
	q := g.db.WithContext(ctx)
	if category != nil {
		q = q.Where("category = ?", *category)
	}
	err := nameLike(q, query).Order("created_at desc").Order("id desc").Find(&posts).Error
	return posts, err
}

func (g *GormStore) ListAdmitCardPosts(ctx context.Context, admitCardCategory string, query string) ([]*model.JobPost, error) {
	var posts []*model.JobPost
	q := g.db.WithContext(ctx).
		Where("category = ? OR (admit_card_url IS NOT NULL AND admit_card_url <> '')", admitCardCategory)
	err := nameLike(q, query).
		Order("created_at desc").Order("id desc").
		Find(&posts).Error
	return posts, err
}

func (g *GormStore) ListSyllabusPosts(ctx context.Context) ([]*model.JobPost, error) {
	var posts []*model.JobPost
	err := g.db.WithContext(ctx).
		Where("syllabus_url IS NOT NULL AND syllabus_url <> ''").
		Order("created_at desc").Order("id desc").
		Find(&posts).Error
	return posts, err
}

func (g *GormStore) ListExpiredJobPosts(ctx context.Context, category string, before string) ([]*model.JobPost, error) {
	var posts []*model.JobPost
	err := g.db.WithContext(ctx).
		Where("category = ? AND last_date IS NOT NULL AND last_date <> '' AND last_date < ?", category, before).
		Find(&posts).Error
	return posts, err
}

func (g *GormStore) UpdateJobPost(ctx context.Context, post *model.JobPost) error {
	return g.db.WithContext(ctx).Save(post).Error
}

func (g *GormStore) MoveJobPosts(ctx context.Context, ids []uint, category string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := g.db.WithContext(ctx).Model(&model.JobPost{}).
		Where("id IN ?", ids).
		Update("category", category)
	return res.RowsAffected, res.Error
}

func (g *GormStore) DeleteJobPost(ctx context.Context, id uint) error {
	res := g.db.WithContext(ctx).Where("id = ?", id).Delete(&model.JobPost{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormStore) CreateJobPostRevision(ctx context.Context, revision *model.JobPostRevision) error {
	return g.db.WithContext(ctx).Create(revision).Error
}

func (g *GormStore) ListJobPostRevisions(ctx context.Context, postID uint) ([]*model.JobPostRevision, error) {
	var revisions []*model.JobPostRevision
	err := g.db.WithContext(ctx).Where("job_post_id = ?", postID).Order("version desc").Find(&revisions).Error
	return revisions, err
}

func (g *GormStore) GetJobPostRevision(ctx context.Context, postID uint, version int64) (*model.JobPostRevision, error) {
	var revision model.JobPostRevision
	err := g.db.WithContext(ctx).Where("job_post_id = ? AND version = ?", postID, version).First(&revision).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &revision, nil
}

func (g *GormStore) DeleteJobPostRevisions(ctx context.Context, postID uint) error {
	return g.db.WithContext(ctx).Where("job_post_id = ?", postID).Delete(&model.JobPostRevision{}).Error
}

func (g *GormStore) PruneJobPostRevisions(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}

	var postIDs []uint
	err := g.db.WithContext(ctx).Model(&model.JobPostRevision{}).
		Group("job_post_id").
		Having("count(*) > ?", keep).
		Pluck("job_post_id", &postIDs).Error
	if err != nil {
		return 0, err
	}

	var removed int64
	for _, postID := range postIDs {
		var ids []string
		err := g.db.WithContext(ctx).Model(&model.JobPostRevision{}).
			Where("job_post_id = ?", postID).
			Order("version desc").
			Pluck("id", &ids).Error
		if err != nil {
			return removed, err
		}
		if len(ids) <= keep {
			continue
		}

		res := g.db.WithContext(ctx).Where("id IN ?", ids[keep:]).Delete(&model.JobPostRevision{})
		if res.Error != nil {
			return removed, res.Error
		}
		logrus.Debugf("pruned %d revisions of job post %d", res.RowsAffected, postID)
		removed += res.RowsAffected
	}

	return removed, nil
}

func (g *GormStore) CreateScheme(ctx context.Context, scheme *model.Scheme) error {
	return g.db.WithContext(ctx).Create(scheme).Error
}

func (g *GormStore) GetScheme(ctx context.Context, id uint) (*model.Scheme, error) {
	var scheme model.Scheme
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&scheme).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &scheme, nil
}

func (g *GormStore) ListSchemes(ctx context.Context) ([]*model.Scheme, error) {
	var schemes []*model.Scheme
	err := g.db.WithContext(ctx).Order("created_at desc").Order("id desc").Find(&schemes).Error
	return schemes, err
}

func (g *GormStore) CountSchemes(ctx context.Context) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&model.Scheme{}).Count(&count).Error
	return count, err
}

func (g *GormStore) UpdateScheme(ctx context.Context, scheme *model.Scheme) error {
	return g.db.WithContext(ctx).Save(scheme).Error
}

func (g *GormStore) DeleteScheme(ctx context.Context, id uint) error {
	res := g.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Scheme{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormStore) CreateQuickLink(ctx context.Context, link *model.QuickLink) error {
	return g.db.WithContext(ctx).Create(link).Error
}

func (g *GormStore) GetQuickLink(ctx context.Context, id uint) (*model.QuickLink, error) {
	var link model.QuickLink
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&link).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &link, nil
}

func (g *GormStore) ListQuickLinks(ctx context.Context, section *string) ([]*model.QuickLink, error) {
	var links []*model.QuickLink
	q := g.db.WithContext(ctx)
	if section != nil {
		q = q.Where("section = ?", *section)
	}
	err := q.Order("position asc").Order("id asc").Find(&links).Error
	return links, err
}

func (g *GormStore) UpdateQuickLink(ctx context.Context, link *model.QuickLink) error {
	return g.db.WithContext(ctx).Save(link).Error
}

func (g *GormStore) DeleteQuickLink(ctx context.Context, id uint) error {
	res := g.db.WithContext(ctx).Where("id = ?", id).Delete(&model.QuickLink{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormStore) SaveDailyQuiz(ctx context.Context, quiz *model.DailyQuiz) error {
	quiz.ID = model.DailyQuizID
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(quiz).Error
}

func (g *GormStore) GetDailyQuiz(ctx context.Context) (*model.DailyQuiz, error) {
	var quiz model.DailyQuiz
	err := g.db.WithContext(ctx).Where("id = ?", model.DailyQuizID).First(&quiz).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &quiz, nil
}

func (g *GormStore) DeleteDailyQuiz(ctx context.Context) error {
	return g.db.WithContext(ctx).Where("id = ?", model.DailyQuizID).Delete(&model.DailyQuiz{}).Error
}

func (g *GormStore) CreateSimpleJob(ctx context.Context, job *model.SimpleJob) error {
	return g.db.WithContext(ctx).Create(job).Error
}

func (g *GormStore) ListSimpleJobs(ctx context.Context, region *string) ([]*model.SimpleJob, error) {
	var jobs []*model.SimpleJob
	q := g.db.WithContext(ctx)
	if region != nil {
		q = q.Where("region = ?", *region)
	}
	err := q.Order("created_at desc").Order("id desc").Find(&jobs).Error
	return jobs, err
}

func (g *GormStore) DeleteSimpleJob(ctx context.Context, id uint) error {
	res := g.db.WithContext(ctx).Where("id = ?", id).Delete(&model.SimpleJob{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormStore) CreateHomeCard(ctx context.Context, card *model.HomeCard) error {
	return g.db.WithContext(ctx).Create(card).Error
}

func (g *GormStore) GetHomeCard(ctx context.Context, id uint) (*model.HomeCard, error) {
	var card model.HomeCard
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&card).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &card, nil
}

func (g *GormStore) ListHomeCards(ctx context.Context, category *string) ([]*model.HomeCard, error) {
	var cards []*model.HomeCard
	q := g.db.WithContext(ctx)
	if category != nil {
		q = q.Where("category = ?", *category)
	}
	err := q.Order("position asc").Order("id asc").Find(&cards).Error
	return cards, err
}

func (g *GormStore) MaxHomeCardPosition(ctx context.Context) (int, error) {
	var top int
	err := g.db.WithContext(ctx).Model(&model.HomeCard{}).Select("COALESCE(MAX(position), 0)").Scan(&top).Error
	return top, err
}

func (g *GormStore) UpdateHomeCard(ctx context.Context, card *model.HomeCard) error {
	return g.db.WithContext(ctx).Save(card).Error
}

func (g *GormStore) DeleteHomeCard(ctx context.Context, id uint) error {
	res := g.db.WithContext(ctx).Where("id = ?", id).Delete(&model.HomeCard{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx Store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx})
	})
}
